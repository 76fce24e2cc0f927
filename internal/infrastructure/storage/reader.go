package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Tanno-Finn/pockethero-3/internal/eventbus"
)

// Journal - прочитанный с диска журнал событий
type Journal struct {
	Seed      int64
	Timestamp int64
	Events    []eventbus.Event
}

func (s *JournalService) Load(path string) (*Journal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(f)
}

func readBinary(r io.Reader) (*Journal, error) {
	var header JournalFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}

	j := &Journal{
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		Events:    make([]eventbus.Event, header.EventCount),
	}

	for i := 0; i < int(header.EventCount); i++ {
		var eh EventHeader
		if err := binary.Read(r, binary.LittleEndian, &eh); err != nil {
			return nil, err
		}

		ev := eventbus.Event{
			Seq: eh.Seq,
			At:  time.Unix(0, eh.At),
		}

		typeBuf := make([]byte, eh.TypeLen)
		if _, err := io.ReadFull(r, typeBuf); err != nil {
			return nil, err
		}
		ev.Type = string(typeBuf)

		if eh.DataLen > 0 {
			dataBuf := make([]byte, eh.DataLen)
			if _, err := io.ReadFull(r, dataBuf); err != nil {
				return nil, err
			}
			if err := json.Unmarshal(dataBuf, &ev.Data); err != nil {
				return nil, fmt.Errorf("malformed event data at %d: %w", i, err)
			}
		}

		j.Events[i] = ev
	}

	return j, nil
}
