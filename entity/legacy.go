package entity

// UseCase belongs to the single use case flow that predates opportunity
// analysis. The derive_use_cases stage still serves it.
type UseCase struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UseCasesResult struct {
	UseCases []UseCase `json:"use_cases"`
}

// MockData is a deterministic test payload for one use case.
type MockData struct {
	UseCaseID string         `json:"use_case_id"`
	Payload   map[string]any `json:"payload"`
}
