package realtime

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Wire protocol definitions

var (
	ErrStatusFrame       = errors.New("status line is not a data frame")
	ErrMalformedEnvelope = errors.New("malformed envelope")
	ErrUnknownType       = errors.New("unknown message type")
	ErrInvalidPayload    = errors.New("invalid payload")
)

// Operation is what a message does to its entity.
type Operation string

const (
	OpAdd    Operation = "add"    // insert-or-replace
	OpUpdate Operation = "update" // update by identifier
	OpDelete Operation = "delete" // delete by identifier
)

// Entity names the synced record kind.
type Entity string

const (
	EntityVilla          Entity = "villa"
	EntityContact        Entity = "contact"
	EntityCompany        Entity = "company"
	EntityCargo          Entity = "cargo"
	EntityVillaContact   Entity = "villacontact"
	EntityCompanyContact Entity = "companycontact"
)

// MessageType is the envelope tag, "<operation>_<entity>".
type MessageType string

const (
	TypeAddVilla             MessageType = "add_villa"
	TypeUpdateVilla          MessageType = "update_villa"
	TypeDeleteVilla          MessageType = "delete_villa"
	TypeAddContact           MessageType = "add_contact"
	TypeUpdateContact        MessageType = "update_contact"
	TypeDeleteContact        MessageType = "delete_contact"
	TypeAddCompany           MessageType = "add_company"
	TypeUpdateCompany        MessageType = "update_company"
	TypeDeleteCompany        MessageType = "delete_company"
	TypeAddCargo             MessageType = "add_cargo"
	TypeUpdateCargo          MessageType = "update_cargo"
	TypeDeleteCargo          MessageType = "delete_cargo"
	TypeAddVillaContact      MessageType = "add_villacontact"
	TypeDeleteVillaContact   MessageType = "delete_villacontact"
	TypeAddCompanyContact    MessageType = "add_companycontact"
	TypeDeleteCompanyContact MessageType = "delete_companycontact"
)

type messageSpec struct {
	op     Operation
	decode func(json.RawMessage) (DTO, error)
}

var messageTypes = map[MessageType]messageSpec{
	TypeAddVilla:             {OpAdd, decodeAs[VillaDTO]},
	TypeUpdateVilla:          {OpUpdate, decodeAs[VillaDTO]},
	TypeDeleteVilla:          {OpDelete, decodeAs[VillaDTO]},
	TypeAddContact:           {OpAdd, decodeAs[ContactDTO]},
	TypeUpdateContact:        {OpUpdate, decodeAs[ContactDTO]},
	TypeDeleteContact:        {OpDelete, decodeAs[ContactDTO]},
	TypeAddCompany:           {OpAdd, decodeAs[CompanyDTO]},
	TypeUpdateCompany:        {OpUpdate, decodeAs[CompanyDTO]},
	TypeDeleteCompany:        {OpDelete, decodeAs[CompanyDTO]},
	TypeAddCargo:             {OpAdd, decodeAs[CargoDTO]},
	TypeUpdateCargo:          {OpUpdate, decodeAs[CargoDTO]},
	TypeDeleteCargo:          {OpDelete, decodeAs[CargoDTO]},
	TypeAddVillaContact:      {OpAdd, decodeAs[VillaContactDTO]},
	TypeDeleteVillaContact:   {OpDelete, decodeAs[VillaContactDTO]},
	TypeAddCompanyContact:    {OpAdd, decodeAs[CompanyContactDTO]},
	TypeDeleteCompanyContact: {OpDelete, decodeAs[CompanyContactDTO]},
}

func decodeAs[T DTO](raw json.RawMessage) (DTO, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Envelope is the frame exchanged with the server.
type Envelope struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Message is a decoded envelope with its typed payload.
type Message struct {
	Type    MessageType
	Op      Operation
	Payload DTO
}

// NewMessage builds the message for applying op to dto. Operations the
// protocol does not define for the entity (e.g. update_villacontact) are
// rejected with ErrUnknownType.
func NewMessage(op Operation, dto DTO) (*Message, error) {
	if dto == nil {
		return nil, fmt.Errorf("%w: nil payload", ErrInvalidPayload)
	}
	msgType := MessageType(string(op) + "_" + string(dto.entity()))
	if _, ok := messageTypes[msgType]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, msgType)
	}
	if err := dto.validate(op); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, msgType, err)
	}
	return &Message{Type: msgType, Op: op, Payload: dto}, nil
}

// Encode marshals m into an envelope. Delete messages carry identifiers only.
func Encode(m *Message) ([]byte, error) {
	var payload any = m.Payload
	if m.Op == OpDelete {
		payload = m.Payload.key()
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", m.Type, err)
	}
	return json.Marshal(Envelope{Type: m.Type, Data: data})
}

// EncodeText is NewMessage followed by Encode.
func EncodeText(op Operation, dto DTO) (string, error) {
	m, err := NewMessage(op, dto)
	if err != nil {
		return "", err
	}
	data, err := Encode(m)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses one received frame. Status lines are rejected with
// ErrStatusFrame before any JSON parsing.
func Decode(raw []byte) (*Message, error) {
	if bytes.HasPrefix(raw, []byte(StatusPrefix)) {
		return nil, ErrStatusFrame
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrMalformedEnvelope)
	}

	spec, ok := messageTypes[env.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, env.Type)
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil, fmt.Errorf("%w: %s: missing data", ErrInvalidPayload, env.Type)
	}

	dto, err := spec.decode(env.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, env.Type, err)
	}
	if err := dto.validate(spec.op); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, env.Type, err)
	}

	return &Message{Type: env.Type, Op: spec.op, Payload: dto}, nil
}
