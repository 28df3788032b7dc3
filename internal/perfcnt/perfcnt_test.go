package perfcnt

import "testing"

func TestOpenEitherSucceedsOrReportsUnsupported(t *testing.T) {
	c, err := Open()
	if err != nil {
		return
	}
	defer c.Close()

	if err := c.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if err := c.Enable(); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	if _, err := c.Read(); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if err := c.Disable(); err != nil {
		t.Fatalf("Disable: %v", err)
	}
}
