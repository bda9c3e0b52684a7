package leads

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"

	"github.com/jonathan/studentjobs/internal/types"
)

// Message is a notification about a new lead.
type Message struct {
	Subject string
	HTML    string
}

// EmployerMessage renders the notification for an employer lead: the subject
// names company and job title, the body is the lead as indented JSON.
func EmployerMessage(lead types.EmployerLead) (Message, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(lead); err != nil {
		return Message{}, fmt.Errorf("failed to encode employer lead: %w", err)
	}
	payload := bytes.TrimRight(buf.Bytes(), "\n")

	return Message{
		Subject: fmt.Sprintf("New employer lead: %s — %s", lead.Company, lead.Title),
		HTML:    "<pre>" + html.EscapeString(string(payload)) + "</pre>",
	}, nil
}
