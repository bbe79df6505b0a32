package pkg

import (
	"encoding/json"
	"log"
	"os"
)

func Encode(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		log.Panic(err)
	}
	return data
}

func Decode(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func InitLog(dest, prefix string) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)
}
