package domain

import "context"

// Translator is the port for the external translation collaborator. It is a
// convenience for staff authoring bilingual questions; scoring and quota
// logic never depend on it.
type Translator interface {
	Translate(ctx context.Context, text string, target Language) (string, error)
}
