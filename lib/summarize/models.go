package summarize

const DefaultModel = "gemini-1.5-pro"

// Model is one entry in the static model listing offered to clients.
type Model struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Models returns the fixed set of generation models on offer. This is
// configuration, not runtime discovery.
func Models() []Model {
	return []Model{
		{ID: "gemini-1.5-pro", Name: "Gemini 1.5 Pro"},
		{ID: "gemini-1.5-flash", Name: "Gemini 1.5 Flash"},
	}
}

func modelIDs() []any {
	models := Models()
	ids := make([]any, len(models))
	for i, m := range models {
		ids[i] = m.ID
	}
	return ids
}
