package utils

import (
	"errors"
	"testing"
	"time"
)

func TestCacheGetOrSet(t *testing.T) {
	t.Run("首次调用执行函数并缓存", func(t *testing.T) {
		calls := 0
		fn := func() (interface{}, error) {
			calls++
			return 42, nil
		}

		for i := 0; i < 3; i++ {
			val, err := CacheGetOrSet("test_get_or_set", time.Minute, fn)
			if err != nil {
				t.Fatalf("CacheGetOrSet 返回错误: %v", err)
			}
			if val != 42 {
				t.Errorf("val = %v, want 42", val)
			}
		}

		if calls != 1 {
			t.Errorf("fn 被调用 %d 次, want 1", calls)
		}
		CacheDelete("test_get_or_set")
	})

	t.Run("函数出错时不缓存", func(t *testing.T) {
		wantErr := errors.New("boom")
		_, err := CacheGetOrSet("test_error", time.Minute, func() (interface{}, error) {
			return nil, wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Errorf("err = %v, want %v", err, wantErr)
		}
		if _, found := CacheGet("test_error"); found {
			t.Error("出错的结果不应该被缓存")
		}
	})
}

func TestCacheDelete(t *testing.T) {
	CacheSet("test_delete", "value", time.Minute)
	CacheDelete("test_delete")
	if _, found := CacheGet("test_delete"); found {
		t.Error("删除后不应该还能取到缓存")
	}
}
