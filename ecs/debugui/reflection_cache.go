//go:build cgo

package debugui

import (
	"reflect"
	"sync"
)

type fieldInfo struct {
	Name  string
	Index int
}

// reflectionCache memoizes the exported fields of component struct types so
// the inspector does not re-walk them every frame.
type reflectionCache struct {
	mu     sync.RWMutex
	byType map[reflect.Type][]fieldInfo
}

func (rc *reflectionCache) fields(t reflect.Type) []fieldInfo {
	rc.mu.RLock()
	cached, ok := rc.byType[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.byType[t]; ok {
		return cached
	}

	var fields []fieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fields = append(fields, fieldInfo{Name: field.Name, Index: i})
		}
	}

	rc.byType[t] = fields
	return fields
}

var globalReflectionCache = &reflectionCache{
	byType: make(map[reflect.Type][]fieldInfo),
}
