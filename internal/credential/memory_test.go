package credential

import "testing"

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	if _, _, err := s.Load(); err != ErrNotFound {
		t.Fatalf("Load on empty store = %v, want ErrNotFound", err)
	}

	if err := s.Save("tok", `{"_id":"u1"}`); err != nil {
		t.Fatalf("Save: %v", err)
	}
	token, user, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "tok" || user != `{"_id":"u1"}` {
		t.Errorf("Load = %q, %q", token, user)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, _, err := s.Load(); err != ErrNotFound {
		t.Errorf("Load after Clear = %v, want ErrNotFound", err)
	}
}
