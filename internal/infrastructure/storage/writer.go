package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Tanno-Finn/pockethero-3/internal/eventbus"
)

const (
	MagicHeader string = `PHEJ` // 4 байта
	Version1    uint32 = 1
)

// JournalFileHeader — точное представление заголовка файла в памяти.
// binary.Write пишет это целиком: тут нет слайсов и строк, только
// массивы и числа.
type JournalFileHeader struct {
	Magic      [4]byte // 4 байта
	Version    uint32  // 4 байта
	Seed       int64   // 8 байт
	Timestamp  int64   // 8 байт
	EventCount int32   // 4 байта
}

// EventHeader — заголовок каждой записи события.
// Тело переменной длины идет следом: имя типа, затем JSON данных.
type EventHeader struct {
	Seq     uint64 // 8
	At      int64  // 8, unix nano
	TypeLen uint8  // 1
	DataLen uint32 // 4
}

// JournalService пишет и читает бинарные журналы событий сессии
type JournalService struct {
	SaveDir string
}

func NewJournalService(dir string) *JournalService {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	return &JournalService{SaveDir: dir}
}

// Save сбрасывает события в новый файл журнала и возвращает его путь
func (s *JournalService) Save(seed int64, events []eventbus.Event) (string, error) {
	ts := time.Now().Unix()
	filename := fmt.Sprintf("journal_%d_%d.phej", seed, ts)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := writeBinary(f, seed, ts, events); err != nil {
		return "", err
	}
	return path, nil
}

func writeBinary(w io.Writer, seed, timestamp int64, events []eventbus.Event) error {
	header := JournalFileHeader{
		Version:    Version1,
		Seed:       seed,
		Timestamp:  timestamp,
		EventCount: int32(len(events)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, ev := range events {
		typeBytes := []byte(ev.Type)
		if len(typeBytes) > 255 {
			return fmt.Errorf("event type too long: %d", len(typeBytes))
		}

		var dataBytes []byte
		if ev.Data != nil {
			var err error
			dataBytes, err = json.Marshal(ev.Data)
			if err != nil {
				return fmt.Errorf("failed to marshal event data: %w", err)
			}
		}

		evHeader := EventHeader{
			Seq:     ev.Seq,
			At:      ev.At.UnixNano(),
			TypeLen: uint8(len(typeBytes)),
			DataLen: uint32(len(dataBytes)),
		}

		if err := binary.Write(w, binary.LittleEndian, &evHeader); err != nil {
			return err
		}
		if _, err := w.Write(typeBytes); err != nil {
			return err
		}
		if len(dataBytes) > 0 {
			if _, err := w.Write(dataBytes); err != nil {
				return err
			}
		}
	}

	return nil
}
