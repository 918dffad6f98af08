package usecase

// DomainError é um erro de regra de negócio, seguro de mostrar ao usuário
// (planilha vazia, lote sem leads, owner ausente). O Code é estável para o
// frontend tratar; a Message é o texto exibido.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError é uma falha de infraestrutura (banco, fila) durante um caso
// de uso. Vira 500 na borda HTTP; a mensagem serve ao log, não ao usuário.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
