// Package condominio resolves which condomínio a WhatsApp export belongs to
// from its file name.
package condominio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"rondasapi/internal/model"
	"rondasapi/internal/textnorm"
)

// exportPrefix is how WhatsApp names exported group chats.
const exportPrefix = "conversa do whatsapp com "

// Aliases maps a condomínio name to alternative names used in group titles.
type Aliases map[string][]string

type aliasFile struct {
	Aliases Aliases `yaml:"aliases"`
}

// ParseAliases reads a document of the form
//
//	aliases:
//	  "Residencial Aurora": ["aurora", "res aurora"]
func ParseAliases(r io.Reader) (Aliases, error) {
	var f aliasFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return Aliases{}, nil
		}
		return nil, fmt.Errorf("parse aliases: %w", err)
	}
	if f.Aliases == nil {
		return Aliases{}, nil
	}
	return f.Aliases, nil
}

// LoadAliases reads the alias file at path. An empty path yields no aliases.
func LoadAliases(path string) (Aliases, error) {
	if path == "" {
		return Aliases{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open aliases: %w", err)
	}
	defer f.Close()
	return ParseAliases(f)
}

// NormalizeFilename strips directory, extension and the export prefix and
// folds what is left.
func NormalizeFilename(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, "_", " ")
	key := textnorm.Fold(base)
	return strings.TrimSpace(strings.TrimPrefix(key, exportPrefix))
}

// Infer picks the condomínio named by filename. Aliases are tried first,
// then an exact name match, then the longest name contained in the file name.
func Infer(filename string, condos []model.Condominio, aliases Aliases) (*model.Condominio, bool) {
	key := NormalizeFilename(filename)
	if key == "" {
		return nil, false
	}

	byName := make(map[string]*model.Condominio, len(condos))
	for i := range condos {
		byName[textnorm.Fold(condos[i].Nome)] = &condos[i]
	}

	if c := inferAlias(key, byName, aliases); c != nil {
		return c, true
	}
	if c, ok := byName[key]; ok {
		return c, true
	}

	names := make([]string, 0, len(byName))
	for n := range byName {
		if n != "" && strings.Contains(key, n) {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil, false
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return byName[names[0]], true
}

// inferAlias prefers an exact alias, then the longest contained one. Ties go
// to the condomínio whose name sorts first.
func inferAlias(key string, byName map[string]*model.Condominio, aliases Aliases) *model.Condominio {
	nomes := make([]string, 0, len(aliases))
	for nome := range aliases {
		nomes = append(nomes, nome)
	}
	sort.Slice(nomes, func(i, j int) bool {
		fi, fj := textnorm.Fold(nomes[i]), textnorm.Fold(nomes[j])
		if fi != fj {
			return fi < fj
		}
		return nomes[i] < nomes[j]
	})

	var best *model.Condominio
	bestLen := 0
	for _, nome := range nomes {
		c, ok := byName[textnorm.Fold(nome)]
		if !ok {
			continue
		}
		for _, a := range aliases[nome] {
			a = textnorm.Fold(a)
			if a == "" {
				continue
			}
			if a == key {
				return c
			}
			if strings.Contains(key, a) && len(a) > bestLen {
				best, bestLen = c, len(a)
			}
		}
	}
	return best
}
