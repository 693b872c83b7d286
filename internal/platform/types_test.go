package platform

import "testing"

func TestParseActivationPolicy_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  ActivationPolicy
	}{
		{"regular", ActivationPolicyRegular},
		{"Regular", ActivationPolicyRegular},
		{"0", ActivationPolicyRegular},
		{"accessory", ActivationPolicyAccessory},
		{"1", ActivationPolicyAccessory},
		{"PROHIBITED", ActivationPolicyProhibited},
		{" 2 ", ActivationPolicyProhibited},
	}
	for _, tt := range tests {
		got, err := ParseActivationPolicy(tt.input)
		if err != nil {
			t.Errorf("ParseActivationPolicy(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseActivationPolicy(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseActivationPolicy_Invalid(t *testing.T) {
	for _, s := range []string{"", "background", "3"} {
		if _, err := ParseActivationPolicy(s); err == nil {
			t.Errorf("ParseActivationPolicy(%q) should fail", s)
		}
	}
}

func TestParseEventKind(t *testing.T) {
	for _, k := range LifecycleEvents {
		got, err := ParseEventKind(string(k))
		if err != nil || got != k {
			t.Errorf("ParseEventKind(%q) = %q, %v", k, got, err)
		}
	}
	if _, err := ParseEventKind("did-explode"); err == nil {
		t.Error("unknown event kind should fail")
	}
}

func TestGenericIconName(t *testing.T) {
	tests := map[string]string{
		"directory-tile": IconGenericFolder,
		"directory":      IconGenericFolder,
		"TrashIcon":      IconTrash,
		"FullTrashIcon":  IconFullTrash,
		"file-tile":      IconGenericDocument,
		"":               IconGenericDocument,
	}
	for kind, want := range tests {
		if got := GenericIconName(kind); got != want {
			t.Errorf("GenericIconName(%q) = %q, want %q", kind, got, want)
		}
	}
}
