package token

var keywords = map[string]Kind{
	"define": KwDefine,
	"lambda": KwLambda,
	"if":     KwIf,
	"and":    KwAnd,
	"or":     KwOr,
	"not":    KwNot,
	"let":    KwLet,
	"list":   KwList,
	"car":    KwCar,
	"cdr":    KwCdr,
	"cons":   KwCons,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые — только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
