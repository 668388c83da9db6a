package assistant

import "testing"

func TestClassifyIntent(t *testing.T) {
	cases := []struct {
		utterance string
		want      Intent
	}{
		// closing phrases, exact after normalization
		{"no", Intent{End: true}},
		{"No gracias", Intent{End: true}},
		{"¡No, gracias!", Intent{End: true}},
		{"eso es todo", Intent{End: true}},
		{"listo", Intent{End: true}},
		{"estoy bien", Intent{End: true}},
		{"nada más", Intent{End: true}},
		// replace markers
		{"mejor pon el cople", Intent{Replace: true}},
		{"prefiero la unión roscada", Intent{Replace: true}},
		{"cambiala por otra", Intent{Replace: true}},
		{"en lugar de teflón dame pegamento", Intent{Replace: true, Add: true}},
		{"en vez de eso", Intent{Replace: true}},
		// add markers
		{"sí, dame el repuesto", Intent{Add: true}},
		{"agrega una cinta", Intent{Add: true}},
		{"también quiero un cortatubo", Intent{Add: true}},
		{"ponlo en mi canasta", Intent{Add: true}},
		{"súmalo", Intent{Add: true}},
		// removal markers
		{"quita el pegamento", Intent{WantsRemoval: true}},
		{"elimina la cinta", Intent{WantsRemoval: true}},
		{"lo quiero sin teflón", Intent{WantsRemoval: true}},
		// "sin"/"si" must match whole words only
		{"busco algo sintético", Intent{}},
		{"necesito silicón", Intent{}},
		// combined flags stay independent
		{"sí, pero quita la cinta", Intent{Add: true, WantsRemoval: true}},
		// nothing matched
		{"necesito unir dos tubos de cobre", Intent{}},
		{"", Intent{}},
	}
	for _, tc := range cases {
		got := ClassifyIntent(tc.utterance)
		if got != tc.want {
			t.Errorf("ClassifyIntent(%q) = %+v, want %+v", tc.utterance, got, tc.want)
		}
	}
}

func TestClassifyIntent_ClosingNeedsExactMatch(t *testing.T) {
	// A closing word inside a longer sentence is not a closing turn.
	got := ClassifyIntent("no tengo el número de la pieza")
	if got.End {
		t.Errorf("ClassifyIntent marked a non-closing sentence as End")
	}
}

func TestIntentLabel(t *testing.T) {
	cases := []struct {
		in   Intent
		want string
	}{
		{Intent{End: true}, "end"},
		{Intent{Replace: true}, "replace"},
		{Intent{Add: true}, "add"},
		{Intent{}, "normal"},
		{Intent{Add: true, WantsRemoval: true}, "add+remove"},
		{Intent{WantsRemoval: true}, "normal+remove"},
	}
	for _, tc := range cases {
		if got := tc.in.Label(); got != tc.want {
			t.Errorf("Label(%+v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIntentNormal(t *testing.T) {
	if !(Intent{}).Normal() {
		t.Error("zero intent should be Normal")
	}
	if (Intent{Add: true}).Normal() {
		t.Error("Add intent should not be Normal")
	}
}
