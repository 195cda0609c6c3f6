package request

import (
	"strings"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
)

// ClientMetadataPrefix is prepended to every metadata key sent over HTTP so
// callers cannot write keys the service sets itself (provider payment ids,
// effective_at).
const ClientMetadataPrefix = "client."

// TransitionRequest is the optional body of every transition route. The
// transition always happens at the server clock. Amount is only read by
// partial deposit refunds and deposit payments.
type TransitionRequest struct {
	Note     string            `json:"note"`
	Amount   float64           `json:"amount"`
	Metadata map[string]string `json:"metadata" binding:"max=16"`
}

func (r TransitionRequest) ToInput(actor entities.Actor) lifecycle.Input {
	return lifecycle.Input{
		Actor:    actor,
		Note:     strings.TrimSpace(r.Note),
		Amount:   r.Amount,
		Metadata: clientMetadata(r.Metadata),
	}
}

func clientMetadata(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		out[ClientMetadataPrefix+k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
