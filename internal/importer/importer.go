package importer

import (
	"io"

	"github.com/MrJamesThe3rd/innkeeper/internal/room"
)

type Format string

const (
	FormatRoomCSV Format = "rooms-csv"
)

// Parser turns an upload, already decoded to UTF-8, into room creation params.
type Parser interface {
	Parse(r io.Reader) ([]room.CreateParams, error)
}
