// Package format re-prints parsed Racket forms in a canonical layout.
//
// Назначение: `rackpy fmt` поверх уже разобранного AST.
// Комментарии между формами сохраняются как есть; форма, внутри которой есть
// комментарий, копируется из исходника без изменений.
// Не делает: IO, трансляцию, восстановление после синтаксических ошибок.
// Зависимости: internal/ast, internal/source (check.go ещё lexer/parser/diag).
package format
