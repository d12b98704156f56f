package persona

import "testing"

func TestStageForTurn(t *testing.T) {
	tests := []struct {
		turn int
		want Stage
	}{
		{1, StageInitial},
		{3, StageInitial},
		{4, StageConcern},
		{7, StageConcern},
		{8, StageCompliance},
		{12, StageCompliance},
		{13, StageExtraction},
		{50, StageExtraction},
	}
	for _, tt := range tests {
		if got := StageForTurn(tt.turn); got != tt.want {
			t.Errorf("StageForTurn(%d) = %v, want %v", tt.turn, got, tt.want)
		}
	}
}

func TestStageString(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageInitial, "initial"},
		{StageConcern, "concern"},
		{StageCompliance, "compliance"},
		{StageExtraction, "extraction"},
	}
	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.stage, got, tt.want)
		}
	}
}
