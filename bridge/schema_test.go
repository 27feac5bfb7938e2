package bridge

import "testing"

func TestValidateRaw_AcceptsWellFormedState(t *testing.T) {
	raw := []byte(`{
		"board_size": 11,
		"step_count": 0,
		"board": [[0,0],[0,1]],
		"agents": [
			{"agent_id": 0, "position": [0,0], "is_alive": true, "ammo": 1, "blast_strength": 2, "can_kick": false, "team": 0}
		]
	}`)
	if err := ValidateRaw(raw); err != nil {
		t.Fatalf("ValidateRaw: %v", err)
	}
}

func TestValidateRaw_RejectsWrongBoardSizeType(t *testing.T) {
	raw := []byte(`{"board_size": "eleven", "step_count": 0, "board": [], "agents": []}`)
	if err := ValidateRaw(raw); err == nil {
		t.Fatalf("expected schema validation error for string board_size")
	}
}

func TestValidateRaw_RejectsMissingRequiredField(t *testing.T) {
	raw := []byte(`{"board_size": 11, "board": [], "agents": []}`)
	if err := ValidateRaw(raw); err == nil {
		t.Fatalf("expected schema validation error for missing step_count")
	}
}

func TestValidateRaw_RejectsOutOfRangeAgentID(t *testing.T) {
	raw := []byte(`{
		"board_size": 11, "step_count": 0, "board": [],
		"agents": [{"agent_id": 9, "position": [0,0], "is_alive": true, "ammo": 0, "blast_strength": 2, "can_kick": false}]
	}`)
	if err := ValidateRaw(raw); err == nil {
		t.Fatalf("expected schema validation error for agent_id out of range")
	}
}

func TestDecodeValidated_RejectsInvalidPayload(t *testing.T) {
	if _, err := DecodeValidated([]byte(`{"board_size": 5}`)); err == nil {
		t.Fatalf("expected validation error before unmarshal")
	}
}
