package sanitize

import (
	"reflect"
	"strings"
	"testing"
)

func TestStringStripping(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text untouched", input: "hello world", want: "hello world"},
		{name: "script block", input: `before<script>alert("x")</script>after`, want: "beforeafter"},
		{name: "script with attributes", input: `<script type="text/javascript">x()</script>ok`, want: "ok"},
		{name: "script case insensitive", input: `<SCRIPT>x()</SCRIPT>ok`, want: "ok"},
		{name: "multiline script", input: "a<script>\nline1\nline2\n</script>b", want: "ab"},
		{name: "iframe block", input: `x<iframe src="https://evil.test"></iframe>y`, want: "xy"},
		{name: "bare tags", input: `<b>bold</b> and <img src="x">`, want: "bold and "},
		{name: "event handler attribute", input: `onclick=alert(1) hi`, want: "alert(1) hi"},
		{name: "event handler spaced", input: `onmouseover = steal() hi`, want: " steal() hi"},
		{name: "javascript uri", input: `javascript:alert(1)`, want: "alert(1)"},
		{name: "javascript uri spaced", input: `JavaScript : alert(1)`, want: " alert(1)"},
		{name: "split tag reassembles", input: `<scr<script></script>ipt>alert(1)</script>`, want: "alert(1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String(tt.input); got != tt.want {
				t.Errorf("String(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStringIdempotent(t *testing.T) {
	inputs := []string{
		"plain",
		`<script>alert("x")</script>`,
		`<scr<script></script>ipt>alert(1)</script>`,
		`onclick=onload=x`,
		`javascript:javascript:alert(1)`,
		`<<b>>double<</b>>`,
	}
	for _, in := range inputs {
		once := String(in)
		twice := String(once)
		if once != twice {
			t.Errorf("not idempotent on %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestDataSanitizesNestedValues(t *testing.T) {
	data := map[string]any{
		"name":  `Ada <script>alert(1)</script>Lovelace`,
		"age":   float64(36),
		"flag":  true,
		"empty": nil,
		"nested": map[string]any{
			"note": `<iframe src="x"></iframe>clean`,
		},
		"list": []any{`<b>one</b>`, float64(2), map[string]any{"deep": `onload=bad ok`}},
	}

	out := Data(data)

	if out["name"] != "Ada Lovelace" {
		t.Errorf("name: got %q", out["name"])
	}
	if out["age"] != float64(36) || out["flag"] != true || out["empty"] != nil {
		t.Error("non-string leaves must pass through unchanged")
	}
	nested := out["nested"].(map[string]any)
	if nested["note"] != "clean" {
		t.Errorf("nested.note: got %q", nested["note"])
	}
	list := out["list"].([]any)
	if list[0] != "one" || list[1] != float64(2) {
		t.Errorf("list: got %v", list)
	}
	if list[2].(map[string]any)["deep"] != "bad ok" {
		t.Errorf("list[2].deep: got %q", list[2].(map[string]any)["deep"])
	}
}

func TestDataDoesNotMutateInput(t *testing.T) {
	data := map[string]any{
		"name":   `<script>x</script>Ada`,
		"nested": map[string]any{"note": `<b>hi</b>`},
	}
	want := map[string]any{
		"name":   `<script>x</script>Ada`,
		"nested": map[string]any{"note": `<b>hi</b>`},
	}

	_ = Data(data)

	if !reflect.DeepEqual(data, want) {
		t.Errorf("input mutated: %v", data)
	}
}

func TestDataIdempotent(t *testing.T) {
	data := map[string]any{
		"a": `<script>alert(1)</script><b>x</b>`,
		"b": []any{`javascript:x`, map[string]any{"c": `onclick=y`}},
	}
	once := Data(data)
	twice := Data(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("not idempotent: %v vs %v", once, twice)
	}
}

func TestDataDepthTruncation(t *testing.T) {
	// Build a chain nested deeper than the bound.
	leaf := map[string]any{"leaf": "value"}
	cur := any(leaf)
	for i := 0; i < 20; i++ {
		cur = map[string]any{"next": cur}
	}
	data := map[string]any{"chain": cur}

	out := Data(data)

	// Walk down: the chain must bottom out at nil instead of recursing forever.
	depth := 0
	v := out["chain"]
	for {
		m, ok := v.(map[string]any)
		if !ok {
			break
		}
		depth++
		v = m["next"]
	}
	if v != nil {
		t.Errorf("expected truncation to nil, stopped at %T", v)
	}
	if depth >= 20 {
		t.Errorf("depth bound not applied, walked %d levels", depth)
	}
}

func TestDataWithDepthCustomBound(t *testing.T) {
	data := map[string]any{
		"l1": map[string]any{
			"l2": map[string]any{"l3": "deep"},
		},
	}

	out := DataWithDepth(data, 2)
	l1 := out["l1"].(map[string]any)
	if l1["l2"] != nil {
		t.Errorf("containers past the bound should truncate to nil, got %v", l1["l2"])
	}

	// Bounds below one fall back to the default.
	out = DataWithDepth(data, 0)
	if out["l1"].(map[string]any)["l2"].(map[string]any)["l3"] != "deep" {
		t.Error("default bound should keep shallow nesting intact")
	}
}

func TestDataNil(t *testing.T) {
	if Data(nil) != nil {
		t.Error("nil record sanitizes to nil")
	}
}

func TestStringLongAdversarialInput(t *testing.T) {
	in := strings.Repeat("<script>", 50) + "payload" + strings.Repeat("</script>", 50)
	out := String(in)
	if strings.Contains(out, "<") || strings.Contains(out, ">") {
		t.Errorf("angle brackets survived: %q", out)
	}
}
