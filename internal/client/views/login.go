package views

import (
	"github.com/lcarvalho/academico/internal/client/session"
)

// LoginView collects credentials and stores the session. Login never fails
// against the server: bad credentials only surface on the first data request.
type LoginView struct {
	store   *session.Store
	prompts *Prompter
}

// NewLoginView creates the login view.
func NewLoginView(store *session.Store, prompts *Prompter) *LoginView {
	return &LoginView{
		store:   store,
		prompts: prompts,
	}
}

// Run prompts for the credential pair and persists the session.
func (v *LoginView) Run() error {
	v.prompts.Printf("=== Sistema Acadêmico ===\n")

	username := v.prompts.ReadRequired("Usuário", "")
	password := v.prompts.ReadRequired("Senha", "")

	if _, err := v.store.Login(username, password); err != nil {
		return err
	}

	v.prompts.Printf("Sessão iniciada como %s.\n", username)
	return nil
}
