// Package decoupled builds the out-of-band confirmation message for the
// decoupled SCA approach.
package decoupled

import (
	"strings"

	dErrors "scaflow/pkg/domain-errors"
)

// Placeholders recognised in the configured confirmation URL template.
const (
	placeholderPsuID           = "{psu-id}"
	placeholderObjectID        = "{object-id}"
	placeholderAuthorisationID = "{authorisation-id}"
	placeholderTan             = "{tan}"
)

// MessageBuilder renders the confirmation message/URL the PSU follows in the
// out-of-band channel (typically a mobile app deep link).
type MessageBuilder struct {
	urlTemplate string
}

func NewMessageBuilder(urlTemplate string) *MessageBuilder {
	return &MessageBuilder{urlTemplate: urlTemplate}
}

// Build renders the human-readable confirmation message. The decoupled
// approach inherently needs a channel, so a missing method id is
// ServiceNotSupported rather than a silent default.
func (b *MessageBuilder) Build(psuID, objectID, authorisationID, methodID, tan string) (string, error) {
	if methodID == "" {
		return "", dErrors.New(dErrors.CodeServiceNotSupported, "decoupled approach requires an authentication method")
	}
	if b.urlTemplate == "" {
		return "Please confirm the operation in your banking app.", nil
	}
	replacer := strings.NewReplacer(
		placeholderPsuID, psuID,
		placeholderObjectID, objectID,
		placeholderAuthorisationID, authorisationID,
		placeholderTan, tan,
	)
	return "Please confirm the operation via " + replacer.Replace(b.urlTemplate), nil
}
