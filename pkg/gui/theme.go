package gui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Terminal safe colours are listed here, themes should stay within them:
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name           string      `json:"name"`
	SquareDark     tcell.Color `json:"squareDark"`
	SquareLight    tcell.Color `json:"squareLight"`
	SquareSelected tcell.Color `json:"squareSelected"`
	SquareFree     tcell.Color `json:"squareFree"`
	SquareEnemy    tcell.Color `json:"squareEnemy"`
	White          tcell.Color `json:"white"`
	Black          tcell.Color `json:"black"`
	Rank           tcell.Color `json:"rank"`
	File           tcell.Color `json:"file"`
	Status         tcell.Color `json:"status"`
}

// ThemeHex is the form themes take in config files.
type ThemeHex struct {
	Name           string `json:"name"`
	SquareDark     string `json:"squareDark"`
	SquareLight    string `json:"squareLight"`
	SquareSelected string `json:"squareSelected"`
	SquareFree     string `json:"squareFree"`
	SquareEnemy    string `json:"squareEnemy"`
	White          string `json:"white"`
	Black          string `json:"black"`
	Rank           string `json:"rank"`
	File           string `json:"file"`
	Status         string `json:"status"`
}

// fmtHex returns "#0" for ColorDefault so it survives a round trip instead of
// being read back as black.
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// getColor is the inverse of fmtHex.
func getColor(s string) tcell.Color {
	if s == "#0" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(s)
}

func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		Name:           t.Name,
		SquareDark:     fmtHex(t.SquareDark.Hex()),
		SquareLight:    fmtHex(t.SquareLight.Hex()),
		SquareSelected: fmtHex(t.SquareSelected.Hex()),
		SquareFree:     fmtHex(t.SquareFree.Hex()),
		SquareEnemy:    fmtHex(t.SquareEnemy.Hex()),
		White:          fmtHex(t.White.Hex()),
		Black:          fmtHex(t.Black.Hex()),
		Rank:           fmtHex(t.Rank.Hex()),
		File:           fmtHex(t.File.Hex()),
		Status:         fmtHex(t.Status.Hex()),
	}
}

func (t ThemeHex) Theme() Theme {
	return Theme{
		Name:           t.Name,
		SquareDark:     getColor(t.SquareDark),
		SquareLight:    getColor(t.SquareLight),
		SquareSelected: getColor(t.SquareSelected),
		SquareFree:     getColor(t.SquareFree),
		SquareEnemy:    getColor(t.SquareEnemy),
		White:          getColor(t.White),
		Black:          getColor(t.Black),
		Rank:           getColor(t.Rank),
		File:           getColor(t.File),
		Status:         getColor(t.Status),
	}
}

// ImportThemes returns the theme named want, looking at the provided themes
// first and the built-in ones after.
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}
	for _, t := range Themes {
		if t.Name == want {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("theme: no theme named %q", want)
}

// ThemeBasic is the default theme
var ThemeBasic = Theme{
	Name:           "basic",
	SquareDark:     tcell.Color188,
	SquareLight:    tcell.Color230,
	SquareSelected: tcell.Color226,
	SquareFree:     tcell.Color151,
	SquareEnemy:    tcell.Color218,
	White:          tcell.Color232,
	Black:          tcell.Color232,
	Rank:           tcell.Color247,
	File:           tcell.Color247,
	Status:         tcell.Color160,
}

var ThemeForest = Theme{
	Name:           "forest",
	SquareDark:     tcell.Color65,
	SquareLight:    tcell.Color187,
	SquareSelected: tcell.Color221,
	SquareFree:     tcell.Color114,
	SquareEnemy:    tcell.Color167,
	White:          tcell.Color231,
	Black:          tcell.Color16,
	Rank:           tcell.Color108,
	File:           tcell.Color108,
	Status:         tcell.ColorDefault,
}

var Themes = []Theme{ThemeBasic, ThemeForest}
