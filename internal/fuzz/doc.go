// Package fuzztests houses Go fuzz harnesses that exercise the transpile
// pipeline (source -> lexer -> parser -> translate). The goal is to guard
// against panics and hangs on arbitrary inputs, and to check that whatever
// parses cleanly also keeps its span invariants and translates.
//
// Назначение: прогонять произвольные байты через FileSet, лексер, парсер и
// транслятор.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
