// Package token defines lexical token kinds and trivia for the rackpy front end.
// Invariants:
//   - Token.Text is exactly the source bytes covered by Token.Span.
//   - Keywords (define, lambda, if, and, or, not, let, list, car, cdr, cons) are
//     case-sensitive and never lexed as Symbol.
//   - A '-' immediately followed by a digit belongs to a Number token; otherwise
//     it is the Minus operator.
//   - Comments (';' to end of line) are leading Trivia and never appear in the
//     main token stream.
package token
