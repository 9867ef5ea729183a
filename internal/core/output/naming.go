package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// caracteres proibidos em nomes de arquivo/pasta no Windows e macOS
const invalidNameChars = `\/:*?"<>|`

// SanitizeName remove os caracteres inválidos para nomes de arquivo/pasta.
func SanitizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(invalidNameChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// versionedPath devolve o primeiro caminho livre para stem.ext dentro de
// dir: sem sufixo, depois -v2, -v3, ... Execuções repetidas nunca
// sobrescrevem artefatos anteriores.
func versionedPath(dir, stem, ext string) string {
	path := filepath.Join(dir, fmt.Sprintf("%s.%s", stem, ext))
	for k := 2; exists(path); k++ {
		path = filepath.Join(dir, fmt.Sprintf("%s-v%d.%s", stem, k, ext))
	}
	return path
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
