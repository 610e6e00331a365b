package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"lan_relay/pkg/errors"
)

type MessageKind string

const (
	MessageKindText MessageKind = "text"
	MessageKindFile MessageKind = "file"
)

// TextContent is the payload of a text message. Content is stored verbatim,
// empty strings included.
type TextContent struct {
	Content string
}

// FileAttachment announces an uploaded file. FileID is the key in the file
// registry.
type FileAttachment struct {
	Filename string
	FileID   uuid.UUID
	Size     int64
}

// Message is one entry of the session timeline. Exactly one of the text or
// file payloads is set, selected by Kind. Messages are immutable once built.
type Message struct {
	ID   uuid.UUID
	Kind MessageKind

	text *TextContent
	file *FileAttachment
}

func NewTextMessage(content string) Message {
	return Message{
		ID:   uuid.New(),
		Kind: MessageKindText,
		text: &TextContent{Content: content},
	}
}

func NewFileMessage(filename string, fileID uuid.UUID, size int64) (Message, error) {
	if filename == "" {
		return Message{}, fmt.Errorf("%w: empty filename", errors.ErrInvalidMessage)
	}
	if fileID == uuid.Nil {
		return Message{}, fmt.Errorf("%w: missing file id", errors.ErrInvalidMessage)
	}
	if size < 0 {
		return Message{}, fmt.Errorf("%w: negative size", errors.ErrInvalidMessage)
	}
	return Message{
		ID:   uuid.New(),
		Kind: MessageKindFile,
		file: &FileAttachment{Filename: filename, FileID: fileID, Size: size},
	}, nil
}

func (m Message) Text() (TextContent, bool) {
	if m.Kind != MessageKindText || m.text == nil {
		return TextContent{}, false
	}
	return *m.text, true
}

func (m Message) File() (FileAttachment, bool) {
	if m.Kind != MessageKindFile || m.file == nil {
		return FileAttachment{}, false
	}
	return *m.file, true
}

// Validate checks that the payload matching Kind is present and the other is not.
func (m Message) Validate() error {
	if m.ID == uuid.Nil {
		return fmt.Errorf("%w: missing id", errors.ErrInvalidMessage)
	}
	switch m.Kind {
	case MessageKindText:
		if m.text == nil || m.file != nil {
			return fmt.Errorf("%w: text message payload mismatch", errors.ErrInvalidMessage)
		}
	case MessageKindFile:
		if m.file == nil || m.text != nil {
			return fmt.Errorf("%w: file message payload mismatch", errors.ErrInvalidMessage)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", errors.ErrInvalidMessage, m.Kind)
	}
	return nil
}

type textMessageJSON struct {
	ID      uuid.UUID   `json:"id"`
	Type    MessageKind `json:"type"`
	Content string      `json:"content"`
}

type fileMessageJSON struct {
	ID       uuid.UUID   `json:"id"`
	Type     MessageKind `json:"type"`
	Filename string      `json:"filename"`
	FileID   uuid.UUID   `json:"file_id"`
	Size     int64       `json:"size"`
}

func (m Message) MarshalJSON() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.Kind == MessageKindText {
		return json.Marshal(textMessageJSON{ID: m.ID, Type: m.Kind, Content: m.text.Content})
	}
	return json.Marshal(fileMessageJSON{
		ID:       m.ID,
		Type:     m.Kind,
		Filename: m.file.Filename,
		FileID:   m.file.FileID,
		Size:     m.file.Size,
	})
}

func (m *Message) UnmarshalJSON(data []byte) error {
	var head struct {
		Type MessageKind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	var decoded Message
	switch head.Type {
	case MessageKindText:
		var t textMessageJSON
		if err := json.Unmarshal(data, &t); err != nil {
			return err
		}
		decoded = Message{ID: t.ID, Kind: MessageKindText, text: &TextContent{Content: t.Content}}
	case MessageKindFile:
		var f fileMessageJSON
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		decoded = Message{
			ID:   f.ID,
			Kind: MessageKindFile,
			file: &FileAttachment{Filename: f.Filename, FileID: f.FileID, Size: f.Size},
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", errors.ErrInvalidMessage, head.Type)
	}

	if err := decoded.Validate(); err != nil {
		return err
	}
	*m = decoded
	return nil
}
