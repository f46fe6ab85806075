package mangle

import "testing"

func TestFileQualified(t *testing.T) {
	if got := FileQualified("m", "f"); got != "m/f" {
		t.Errorf("FileQualified(m, f) = %q, want m/f", got)
	}
}

func TestStaticMember(t *testing.T) {
	if got := StaticMember("C", "v"); got != "C.v" {
		t.Errorf("StaticMember(C, v) = %q, want C.v", got)
	}
}

func TestInstanceMember(t *testing.T) {
	if got := InstanceMember("C", "v"); got != "C#v" {
		t.Errorf("InstanceMember(C, v) = %q, want C#v", got)
	}
}

func TestGetterSetterPrefix(t *testing.T) {
	if got := Getter("v"); got != "get:v" {
		t.Errorf("Getter(v) = %q, want get:v", got)
	}
	if got := Setter("v"); got != "set:v" {
		t.Errorf("Setter(v) = %q, want set:v", got)
	}
}

// A static accessor's getter/setter prototype is keyed by
// <classInternalName><static-delim><prefix><name>, per spec §4.1.
func TestStaticAccessorKey(t *testing.T) {
	got := StaticMember("C", Getter("v"))
	want := "C.get:v"
	if got != want {
		t.Errorf("static accessor key = %q, want %q", got, want)
	}
}

// An instance accessor's getter/setter prototype is keyed by
// <classInternalName><instance-delim><prefix><name>, per spec §4.1.
func TestInstanceAccessorKey(t *testing.T) {
	got := InstanceMember("C", Setter("v"))
	want := "C#set:v"
	if got != want {
		t.Errorf("instance accessor key = %q, want %q", got, want)
	}
}
