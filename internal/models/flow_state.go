package models

// FlowState is the persisted step of an interactive dialog (auth wizard,
// booking wizard) plus its scratch data. Data survives a JSON round-trip
// through Redis, so the getters tolerate the types json.Unmarshal produces.
type FlowState struct {
	SessionID string
	Step      string
	Data      map[string]interface{}
}

func (s *FlowState) GetString(key string) string {
	if s.Data == nil {
		return ""
	}
	val, ok := s.Data[key]
	if !ok {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func (s *FlowState) GetFloat64(key string) float64 {
	if s.Data == nil {
		return 0
	}
	val, ok := s.Data[key]
	if !ok {
		return 0
	}
	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

func (s *FlowState) Set(key string, value interface{}) {
	if s.Data == nil {
		s.Data = make(map[string]interface{})
	}
	s.Data[key] = value
}
