package middleware

import (
	"net/http"
)

// SessionHeader é o header que identifica a sessão anônima do navegador.
// O cliente gera o valor uma vez e o reenvia em todas as requisições; ele
// cumpre o papel do armazenamento local do navegador, delimitando o slot
// persistente de carrinho e histórico de cada sessão.
const SessionHeader = "X-Session-ID"

// OwnerFromRequest resolve o dono do carrinho/histórico da requisição:
// o ID do usuário autenticado, se houver claims no contexto, senão o ID de
// sessão anônima. Retorna "" se nenhum dos dois estiver presente.
// Há um único escritor lógico por dono (uma sessão de navegador), então as
// operações de carrinho não precisam de locking; corridas entre abas estão
// fora de escopo (a última escrita vence).
func OwnerFromRequest(r *http.Request) string {
	if claims, ok := GetUserClaimsFromContext(r.Context()); ok && claims.UserID != "" {
		return claims.UserID
	}
	return r.Header.Get(SessionHeader)
}

// GuestSession retorna o ID de sessão anônima de uma requisição autenticada.
// O cliente continua enviando o X-Session-ID depois do login, e o carrinho
// montado antes da autenticação vive nesse slot; quem recebe este valor deve
// adotá-lo para o slot do usuário. Retorna "" em requisições anônimas (o
// header já é o próprio dono) ou sem sessão pendente.
func GuestSession(r *http.Request) string {
	claims, ok := GetUserClaimsFromContext(r.Context())
	if !ok || claims.UserID == "" {
		return ""
	}
	session := r.Header.Get(SessionHeader)
	if session == claims.UserID {
		return ""
	}
	return session
}
