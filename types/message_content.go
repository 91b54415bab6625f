package types

import (
	"encoding/json"
	"errors"
	"slices"

	"github.com/tidwall/gjson"
)

// InputMessageContent is the content of a message sent as the result of an
// inline query. The variants carry no discriminator on the wire and are told
// apart by their fields.
type InputMessageContent interface {
	json.Marshaler
	inputMessageContent()
}

// InputMessageContentText sends a text message.
type InputMessageContentText struct {
	p inputText
}

type inputText struct {
	MessageText           string       `json:"message_text"`
	ParseMode             ParseMode    `json:"parse_mode,omitempty"`
	Entities              []TextEntity `json:"entities,omitempty"`
	DisableWebPagePreview bool         `json:"disable_web_page_preview,omitempty"`
}

func NewInputText(text string) InputMessageContentText {
	return InputMessageContentText{p: inputText{MessageText: text}}
}

// ParseMode sets the parse mode and drops explicit entities.
func (c InputMessageContentText) ParseMode(mode ParseMode) InputMessageContentText {
	c.p.ParseMode = mode
	c.p.Entities = nil
	return c
}

// Entities sets explicit entities and drops the parse mode.
func (c InputMessageContentText) Entities(entities ...TextEntity) InputMessageContentText {
	c.p.Entities = slices.Clone(entities)
	c.p.ParseMode = ""
	return c
}

func (c InputMessageContentText) DisableWebPagePreview(v bool) InputMessageContentText {
	c.p.DisableWebPagePreview = v
	return c
}

func (c InputMessageContentText) Text() string { return c.p.MessageText }

func (c InputMessageContentText) MarshalJSON() ([]byte, error) { return json.Marshal(c.p) }
func (c *InputMessageContentText) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.p)
}

// InputMessageContentLocation sends a location.
type InputMessageContentLocation struct {
	p inputLocation
}

type inputLocation struct {
	Latitude             float64 `json:"latitude"`
	Longitude            float64 `json:"longitude"`
	HorizontalAccuracy   float64 `json:"horizontal_accuracy,omitempty"`
	LivePeriod           int     `json:"live_period,omitempty"`
	Heading              int     `json:"heading,omitempty"`
	ProximityAlertRadius int     `json:"proximity_alert_radius,omitempty"`
}

func NewInputLocation(latitude, longitude float64) InputMessageContentLocation {
	return InputMessageContentLocation{p: inputLocation{Latitude: latitude, Longitude: longitude}}
}

func (c InputMessageContentLocation) HorizontalAccuracy(meters float64) InputMessageContentLocation {
	c.p.HorizontalAccuracy = meters
	return c
}

// LivePeriod is the number of seconds the location is updated for, 60 to 86400.
func (c InputMessageContentLocation) LivePeriod(seconds int) InputMessageContentLocation {
	c.p.LivePeriod = seconds
	return c
}

func (c InputMessageContentLocation) Heading(degrees int) InputMessageContentLocation {
	c.p.Heading = degrees
	return c
}

func (c InputMessageContentLocation) ProximityAlertRadius(meters int) InputMessageContentLocation {
	c.p.ProximityAlertRadius = meters
	return c
}

func (c InputMessageContentLocation) MarshalJSON() ([]byte, error) { return json.Marshal(c.p) }
func (c *InputMessageContentLocation) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.p)
}

// InputMessageContentVenue sends a venue.
type InputMessageContentVenue struct {
	p inputVenue
}

type inputVenue struct {
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Title           string  `json:"title"`
	Address         string  `json:"address"`
	FoursquareID    string  `json:"foursquare_id,omitempty"`
	FoursquareType  string  `json:"foursquare_type,omitempty"`
	GooglePlaceID   string  `json:"google_place_id,omitempty"`
	GooglePlaceType string  `json:"google_place_type,omitempty"`
}

func NewInputVenue(latitude, longitude float64, title, address string) InputMessageContentVenue {
	return InputMessageContentVenue{p: inputVenue{Latitude: latitude, Longitude: longitude, Title: title, Address: address}}
}

func (c InputMessageContentVenue) Foursquare(id, kind string) InputMessageContentVenue {
	c.p.FoursquareID, c.p.FoursquareType = id, kind
	return c
}

func (c InputMessageContentVenue) GooglePlace(id, kind string) InputMessageContentVenue {
	c.p.GooglePlaceID, c.p.GooglePlaceType = id, kind
	return c
}

func (c InputMessageContentVenue) MarshalJSON() ([]byte, error) { return json.Marshal(c.p) }
func (c *InputMessageContentVenue) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.p)
}

// InputMessageContentContact sends a contact.
type InputMessageContentContact struct {
	p inputContact
}

type inputContact struct {
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name,omitempty"`
	VCard       string `json:"vcard,omitempty"`
}

func NewInputContact(phoneNumber, firstName string) InputMessageContentContact {
	return InputMessageContentContact{p: inputContact{PhoneNumber: phoneNumber, FirstName: firstName}}
}

func (c InputMessageContentContact) LastName(s string) InputMessageContentContact {
	c.p.LastName = s
	return c
}

// VCard sets additional data about the contact, 0 to 2048 bytes.
func (c InputMessageContentContact) VCard(s string) InputMessageContentContact {
	c.p.VCard = s
	return c
}

func (c InputMessageContentContact) MarshalJSON() ([]byte, error) { return json.Marshal(c.p) }
func (c *InputMessageContentContact) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.p)
}

func (InputMessageContentText) inputMessageContent()     {}
func (InputMessageContentLocation) inputMessageContent() {}
func (InputMessageContentVenue) inputMessageContent()    {}
func (InputMessageContentContact) inputMessageContent()  {}

// ErrUnknownMessageContent is returned when no variant matches the fields of
// an input message content object.
var ErrUnknownMessageContent = errors.New("unknown input message content")

// DecodeInputMessageContent picks the variant by the fields present in data.
func DecodeInputMessageContent(data []byte) (InputMessageContent, error) {
	probe := gjson.ParseBytes(data)
	var content interface {
		InputMessageContent
		json.Unmarshaler
	}
	switch {
	case probe.Get("message_text").Exists():
		content = &InputMessageContentText{}
	case probe.Get("phone_number").Exists():
		content = &InputMessageContentContact{}
	case probe.Get("address").Exists():
		content = &InputMessageContentVenue{}
	case probe.Get("latitude").Exists():
		content = &InputMessageContentLocation{}
	default:
		return nil, ErrUnknownMessageContent
	}
	if err := content.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	switch c := content.(type) {
	case *InputMessageContentText:
		return *c, nil
	case *InputMessageContentContact:
		return *c, nil
	case *InputMessageContentVenue:
		return *c, nil
	case *InputMessageContentLocation:
		return *c, nil
	}
	return content, nil
}

// messageContent holds an InputMessageContent inside a JSON record.
type messageContent struct {
	InputMessageContent
}

func (c messageContent) MarshalJSON() ([]byte, error) {
	return c.InputMessageContent.MarshalJSON()
}

func (c *messageContent) UnmarshalJSON(data []byte) error {
	v, err := DecodeInputMessageContent(data)
	if err != nil {
		return err
	}
	c.InputMessageContent = v
	return nil
}

func wrapContent(c InputMessageContent) *messageContent {
	if c == nil {
		return nil
	}
	return &messageContent{InputMessageContent: c}
}

func unwrapContent(c *messageContent) InputMessageContent {
	if c == nil {
		return nil
	}
	return c.InputMessageContent
}
