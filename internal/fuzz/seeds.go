package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса
)

// builtinSeeds покрывают каждую форму грамматики и типичные ошибки.
var builtinSeeds = []string{
	"",
	"42",
	"-3.5",
	`"hello"`,
	"(define x (+ 1 2))",
	"(define (f a b) (if (> a b) a b))",
	"(lambda (x) (* x x))",
	"(if (<= x 1) 1)",
	"(and a (or b (not c)))",
	"(let ((a 1) (b (+ a 1))) (+ a b))",
	"(list 1 2 3)",
	"(car '(1 2)) (cdr '()) (cons 1 '(2))",
	"(f 1 (g 2))",
	"(+ 1",
	")",
	"'x",
	"(define)",
	"(let () x)",
	"(!= 1 2 3)",
	"; comment only\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata: файлы целиком и каждая строка отдельно
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".rkt" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		for line := range strings.SplitSeq(string(src), "\n") {
			if strings.TrimSpace(line) != "" {
				f.Add([]byte(line))
			}
		}
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
