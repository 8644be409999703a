package bridge

import (
	"testing"

	"github.com/seu-repo/genie-bridge/internal/domain"
)

func TestParseTargetCode_ArgsAndBody(t *testing.T) {
	code := `action (p_message : String, p_interval : Measure(ms)) := @com.twitter.post(status=p_message) #_[utterances=["tweet $p_message"]];`

	parsed, err := ParseTargetCode(code)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(parsed.ArgNames) != 2 || parsed.ArgNames[0] != "p_message" || parsed.ArgNames[1] != "p_interval" {
		t.Errorf("expected ordered arg names, got %v", parsed.ArgNames)
	}
	if parsed.ArgTypes["p_message"].Kind != domain.KindString {
		t.Errorf("expected p_message : String, got %+v", parsed.ArgTypes["p_message"])
	}
	interval := parsed.ArgTypes["p_interval"]
	if interval.Kind != domain.KindMeasure || interval.Unit != "ms" {
		t.Errorf("expected Measure(ms), got %+v", interval)
	}
	if parsed.Body != "@com.twitter.post(status=p_message)" {
		t.Errorf("expected annotation and semicolon stripped, got %q", parsed.Body)
	}
}

func TestParseTargetCode_NoArgs(t *testing.T) {
	parsed, err := ParseTargetCode(`action := @light-bulb.set_power(power=enum(on));`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(parsed.ArgNames) != 0 {
		t.Errorf("expected no args, got %v", parsed.ArgNames)
	}
	if parsed.Body != "@light-bulb.set_power(power=enum(on))" {
		t.Errorf("unexpected body %q", parsed.Body)
	}
}

func TestParseTargetCode_EnumDetailSurvivesNestedCommas(t *testing.T) {
	parsed, err := ParseTargetCode(`action (p_mode : Enum(heat,cool), p_temp : Number) := @thermostat.set(mode=p_mode, value=p_temp);`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(parsed.ArgNames) != 2 {
		t.Fatalf("expected 2 args, got %v", parsed.ArgNames)
	}
	mode := parsed.ArgTypes["p_mode"]
	if mode.Kind != domain.KindEnum || mode.Unit != "heat,cool" {
		t.Errorf("expected Enum(heat,cool), got %+v", mode)
	}
}

func TestParseTargetCode_MissingAssign_Fails(t *testing.T) {
	if _, err := ParseTargetCode(`action (p_x : String) @foo.bar()`); err == nil {
		t.Fatal("expected an error for target code without ':='")
	}
}

func TestParseTargetCode_UntypedArg_Fails(t *testing.T) {
	if _, err := ParseTargetCode(`action (p_x) := @foo.bar();`); err == nil {
		t.Fatal("expected an error for an untyped argument")
	}
}

func TestBind_SubstitutesSlotKeysInOrder(t *testing.T) {
	parsed, err := ParseTargetCode(`action (p_message : String, p_to : String) := @com.example.send(to=p_to, body=p_message);`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	bound := parsed.Bind()
	want := "@com.example.send(to=SLOT_1, body=SLOT_0)"
	if bound != want {
		t.Errorf("expected %q, got %q", want, bound)
	}
}

func TestBind_DoesNotTouchPartialMatches(t *testing.T) {
	// p_message_id is a different identifier than p_message.
	parsed := &ParsedExample{
		ArgNames: []string{"p_message"},
		Body:     "@com.example.act(a=p_message, b=p_message_id)",
	}

	bound := parsed.Bind()
	want := "@com.example.act(a=SLOT_0, b=p_message_id)"
	if bound != want {
		t.Errorf("expected %q, got %q", want, bound)
	}
}

func TestBind_NormalizesWhitespace(t *testing.T) {
	parsed := &ParsedExample{
		ArgNames: []string{"p_x"},
		Body:     "@foo.bar ( value =  p_x )",
	}

	bound := parsed.Bind()
	want := "@foo.bar ( value = SLOT_0 )"
	if bound != want {
		t.Errorf("expected %q, got %q", want, bound)
	}
}
