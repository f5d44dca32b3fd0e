package config

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFlagTracker_Merge(t *testing.T) {
	ft := NewFlagTrackerWithFlags(map[string]bool{"workers": true, "allow-partial": true, "parse-timeout": true})

	assert.Equal(t, 8, ft.MergeInt(2, 8, "workers"))
	assert.Equal(t, 2, ft.MergeInt(2, 8, "similarity-workers"))
	assert.True(t, ft.MergeBool(false, true, "allow-partial"))
	assert.False(t, ft.MergeBool(false, true, "details"))
	assert.Equal(t, "text", ft.MergeString("text", "json", "format"))
	assert.Equal(t, time.Second, ft.MergeDuration(10*time.Second, time.Second, "parse-timeout"))
}

func TestFlagTracker_MergeStringSliceAppends(t *testing.T) {
	ft := NewFlagTracker()
	base := []string{"README*"}

	assert.Equal(t, base, ft.MergeStringSlice(base, []string{"*.md"}, "exclude"))

	ft.Set("exclude")
	assert.Equal(t, []string{"README*", "*.md"}, ft.MergeStringSlice(base, []string{"*.md"}, "exclude"))
	assert.Equal(t, base, ft.MergeStringSlice(base, nil, "exclude"))
	assert.Equal(t, []string{"README*"}, base)
}

func TestFlagTracker_CopiesInitialFlags(t *testing.T) {
	flags := map[string]bool{"workers": true}
	ft := NewFlagTrackerWithFlags(flags)
	flags["json"] = true

	assert.False(t, ft.WasSet("json"))
	assert.Equal(t, 1, ft.Count())
}

func TestFlagTracker_ConcurrentAccess(t *testing.T) {
	ft := NewFlagTracker()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("flag-%d", i%10)
			ft.Set(name)
			_ = ft.WasSet(name)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, ft.Count())
}
