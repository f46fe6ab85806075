package types

import "testing"

func TestPointerType(t *testing.T) {
	cases := []struct {
		target Target
		signed bool
		want   Primitive
	}{
		{WASM32, true, I32},
		{WASM32, false, U32},
		{WASM64, true, I64},
		{WASM64, false, U64},
	}
	for _, c := range cases {
		if got := c.target.PointerType(c.signed); got != c.want {
			t.Errorf("%v.PointerType(%v) = %v, want %v", c.target, c.signed, got, c.want)
		}
	}
}

func TestTargetString(t *testing.T) {
	if WASM32.String() != "wasm32" {
		t.Errorf("WASM32.String() = %q, want wasm32", WASM32.String())
	}
	if WASM64.String() != "wasm64" {
		t.Errorf("WASM64.String() = %q, want wasm64", WASM64.String())
	}
}

// TypesToString must be injective per distinct argument tuple and support
// both the bracketed disambiguation form and the bare comma form used inside
// instance-cache keys (spec §6, "Generic instance suffix").
func TestTypesToString(t *testing.T) {
	if got := TypesToString(nil, "<", ">"); got != "" {
		t.Errorf("TypesToString(nil) = %q, want empty", got)
	}
	if got := TypesToString([]Type{I32}, "", ""); got != "i32" {
		t.Errorf("TypesToString([i32], bare) = %q, want i32", got)
	}
	if got := TypesToString([]Type{I32, F64}, "<", ">"); got != "<i32,f64>" {
		t.Errorf("TypesToString([i32,f64], bracketed) = %q, want <i32,f64>", got)
	}
	// Distinct argument tuples must not collide.
	a := TypesToString([]Type{I32, I64}, "", "")
	b := TypesToString([]Type{I64, I32}, "", "")
	if a == b {
		t.Errorf("TypesToString must distinguish argument order: both produced %q", a)
	}
}

func TestNative(t *testing.T) {
	cases := []struct {
		t    Type
		want NativeKind
	}{
		{I32, NativeI32}, {U8, NativeI32}, {I16, NativeI32},
		{I64, NativeI64}, {U64, NativeI64},
		{F32, NativeF32},
		{F64, NativeF64},
	}
	for _, c := range cases {
		if got := Native(c.t, WASM32); got != c.want {
			t.Errorf("Native(%v) = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestNativeClassPointerWidth(t *testing.T) {
	ct := &ClassType{Name: "C", Width: 4}
	if got := Native(ct, WASM32); got != NativeI32 {
		t.Errorf("Native(ClassType, WASM32) = %v, want NativeI32", got)
	}
	if got := Native(ct, WASM64); got != NativeI64 {
		t.Errorf("Native(ClassType, WASM64) = %v, want NativeI64", got)
	}
}

func TestNativePanicsOnVoid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Native(Void) should panic: void cannot back a temp local")
		}
	}()
	Native(Void, WASM32)
}
