package service

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressManager_NonInteractiveWriter(t *testing.T) {
	var buf bytes.Buffer
	pm := NewProgressManager()
	pm.SetWriter(&buf)

	assert.False(t, pm.IsInteractive())

	pm.Initialize(3)
	pm.Start()
	pm.Increment()
	pm.Complete(true)
	pm.Close()

	assert.Empty(t, buf.String())
}

func TestProgressManager_Interactive(t *testing.T) {
	var buf bytes.Buffer
	pm := &ProgressManagerImpl{writer: &buf, interactive: true}

	pm.Initialize(8)
	pm.Start()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pm.Increment()
		}()
	}
	wg.Wait()
	pm.Complete(true)
	pm.Close()

	assert.Contains(t, buf.String(), "Comparing pairs")
	assert.Contains(t, buf.String(), "8/8")
}
