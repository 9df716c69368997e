package handlers

import (
	"fmt"
	"html/template"
	"path/filepath"
	"strconv"
	"sync"

	"universal-shop/internal/models"
)

// TemplateCache holds the parsed page templates.
type TemplateCache struct {
	cache map[string]*template.Template
	mu    sync.RWMutex
	funcs template.FuncMap
}

func NewTemplateCache() *TemplateCache {
	return &TemplateCache{
		cache: make(map[string]*template.Template),
		funcs: template.FuncMap{
			"price": func(p float64) string {
				return strconv.FormatFloat(p, 'f', 2, 64)
			},
			"productImage": func(url string) string {
				if url == "" {
					return "/static/placeholder.svg"
				}
				return url
			},
			"methodLabel": func(m models.PaymentMethod) string {
				return m.Label()
			},
		},
	}
}

// Load parses every HTML file in dir.
func (tc *TemplateCache) Load(dir string) error {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	files, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no templates found in %s", dir)
	}

	for _, file := range files {
		name := filepath.Base(file)
		tmpl, err := template.New(name).Funcs(tc.funcs).ParseFiles(file)
		if err != nil {
			return fmt.Errorf("parse template %s: %w", file, err)
		}
		tc.cache[name] = tmpl
	}
	return nil
}

func (tc *TemplateCache) Get(name string) *template.Template {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.cache[name]
}
