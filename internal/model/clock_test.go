package model

import (
	"testing"
	"time"

	"github.com/benbeisheim/fogchess-backend/internal/testutil"
)

func TestClock(t *testing.T) {
	now := time.Unix(0, 0)
	c := NewClock(time.Minute)
	c.now = func() time.Time { return now }

	testutil.AssertEqual(t, c.GetTimeLeft(), time.Minute)
	testutil.AssertEqual(t, c.Deciseconds(), 600)

	c.Start()
	now = now.Add(10 * time.Second)
	testutil.AssertEqual(t, c.GetTimeLeft(), 50*time.Second, "running")

	c.Stop()
	now = now.Add(time.Hour)
	testutil.AssertEqual(t, c.GetTimeLeft(), 50*time.Second, "stopped")

	c.Start()
	c.Start()
	now = now.Add(2 * time.Minute)
	testutil.AssertEqual(t, c.GetTimeLeft(), time.Duration(0), "never negative")
}
