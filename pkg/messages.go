package pkg

import (
	"encoding/json"

	"github.com/qnkhuat/pawnrace/pkg/game"
)

type MessageType int

const (
	TypeMessageTransport MessageType = iota
	TypeMessageJoin
	TypeMessageConnect
	TypeMessageClick
	TypeMessageCommand
	TypeMessageState
	TypeMessageHighlight
	TypeMessageFinished
)

func (m MessageType) String() string {
	switch m {
	case TypeMessageTransport:
		return "TypeMessageTransport"
	case TypeMessageJoin:
		return "TypeMessageJoin"
	case TypeMessageConnect:
		return "TypeMessageConnect"
	case TypeMessageClick:
		return "TypeMessageClick"
	case TypeMessageCommand:
		return "TypeMessageCommand"
	case TypeMessageState:
		return "TypeMessageState"
	case TypeMessageHighlight:
		return "TypeMessageHighlight"
	case TypeMessageFinished:
		return "TypeMessageFinished"
	default:
		return "Unknown MessageType"
	}
}

type MessageInterface interface {
	Type() MessageType
	Encode() json.RawMessage
}

// MessageTransport is the newline framed envelope every message travels in.
type MessageTransport struct {
	MsgType  MessageType
	Data     json.RawMessage
	PlayerId int
}

func (m MessageTransport) Type() MessageType { return TypeMessageTransport }
func (m MessageTransport) Encode() json.RawMessage { return Encode(m) }

// MessageJoin is the first line a client sends.
type MessageJoin struct {
	MatchId string
	Name    string
}

func (m MessageJoin) Type() MessageType { return TypeMessageJoin }
func (m MessageJoin) Encode() json.RawMessage { return Encode(m) }

type MessageConnect struct {
	Team    PlayerTeam
	MatchId string
	Name    string
	State   game.BoardState
}

func (m MessageConnect) Type() MessageType { return TypeMessageConnect }
func (m MessageConnect) Encode() json.RawMessage { return Encode(m) }

type MessageClick struct {
	File int
	Rank int
}

func (m MessageClick) Type() MessageType { return TypeMessageClick }
func (m MessageClick) Encode() json.RawMessage { return Encode(m) }

type MessageCommand struct {
	Action Action
}

func (m MessageCommand) Type() MessageType { return TypeMessageCommand }
func (m MessageCommand) Encode() json.RawMessage { return Encode(m) }

type MessageState struct {
	State game.BoardState
}

func (m MessageState) Type() MessageType { return TypeMessageState }
func (m MessageState) Encode() json.RawMessage { return Encode(m) }

type MessageHighlight struct {
	Squares []game.Highlight
}

func (m MessageHighlight) Type() MessageType { return TypeMessageHighlight }
func (m MessageHighlight) Encode() json.RawMessage { return Encode(m) }

type MessageFinished struct {
	Winner string
}

func (m MessageFinished) Type() MessageType { return TypeMessageFinished }
func (m MessageFinished) Encode() json.RawMessage { return Encode(m) }

// Frame wraps a message in its transport envelope, newline terminated.
func Frame(m MessageInterface, playerId int) []byte {
	b := Encode(MessageTransport{MsgType: m.Type(), Data: m.Encode(), PlayerId: playerId})
	if b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}
	return b
}
