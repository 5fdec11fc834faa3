package relay

import (
	"fmt"
	"sort"
	"strings"

	"go-chatrelay-svc/internal/ai"
	"go-chatrelay-svc/internal/workspace"
)

// messageSet holds every user-facing template for one locale.
type messageSet struct {
	welcome          string
	help             string
	aiEnabled        string
	aiDisabled       string
	providerSwitched string
	unknownProvider  string
	providerHint     string
	dummyBanner      string
	dummyReply       string
	disabledReply    string
	armedNote        string
	armedSentiment   string
	usageSave        string
	usageSearch      string
	noteSaved        string
	truncationNotice string
	collectionsEmpty string
	collectionsHead  string
	collectionLine   string
	searchEmpty      string
	searchHead       string
	searchLine       string
	sentimentHead    string
	sentimentLine    string
	sentimentEmpty   string
	errTimeout       string
	errAuth          string
	errNotFound      string
	errGeneric       string
	unknownCommand   string
	emptyMessage     string
}

var english = messageSet{
	welcome: "👋 Welcome! Send me any message and I'll answer with the active AI provider.\n" +
		"Use /help to see every command.",
	help: "🤖 Commands:\n" +
		"/start — initialize the bot\n" +
		"/help — show this message\n" +
		"/ai — toggle AI processing on or off\n" +
		"/provider <name> — switch AI provider\n" +
		"/dummy — stop consulting any AI backend\n" +
		"/sentiment — analyze the sentiment of your next message\n" +
		"/save <title> — save your next message as a note\n" +
		"/notes — list workspace collections\n" +
		"/search <query> — search the workspace",
	aiEnabled:        "✅ AI enabled using %s.",
	aiDisabled:       "💤 AI is now disabled. Use /ai to enable it again.",
	providerSwitched: "🔁 Switched provider to %s.",
	unknownProvider:  "I don't know the provider %q. Available providers:",
	providerHint:     "/provider %s — %s",
	dummyBanner:      "🤖 Dummy mode is now active. I will not consult any AI. Re-enable one with:",
	dummyReply:       "I cannot respond, dummy mode is active. Activate a provider with:",
	disabledReply:    "AI is disabled. Use /ai to enable it.",
	armedNote:        "📝 Got it. Send me the content for the note %q.",
	armedSentiment:   "🔍 Send me the text you want analyzed.",
	usageSave:        "Usage: /save <title> — e.g. /save Meeting notes",
	usageSearch:      "Usage: /search <query> — e.g. /search roadmap",
	noteSaved:        "📝 Note %q saved: %s",
	truncationNotice: "⚠️ The note was longer than %d characters and was truncated.",
	collectionsEmpty: "No collections are shared with me yet.",
	collectionsHead:  "📚 Workspace collections:",
	collectionLine:   "• %s (%s)",
	searchEmpty:      "No pages matched your search.",
	searchHead:       "🔎 Search results:",
	searchLine:       "• %s — %s (edited %s)",
	sentimentHead:    "🔍 Sentiment analysis:",
	sentimentLine:    "%s: %s (%.0f%% confidence)",
	sentimentEmpty:   "No sentiment vendor returned a result. Please try again.",
	errTimeout:       "⏳ The request timed out. Please try again.",
	errAuth:          "🔒 I couldn't authenticate with the upstream service. Ask the operator to check credentials and permissions.",
	errNotFound:      "🤔 The upstream resource wasn't found. Ask the operator to check the configuration.",
	errGeneric:       "Sorry, something went wrong. Please try again later.",
	unknownCommand:   "I don't know that command. Use /help to see what I can do.",
	emptyMessage:     "Please send a text message.",
}

var portuguese = messageSet{
	welcome: "👋 Bem-vindo! Envie qualquer mensagem e eu respondo com o provedor de IA ativo.\n" +
		"Use /help para ver todos os comandos.",
	help: "🤖 Comandos:\n" +
		"/start — inicializar o bot\n" +
		"/help — mostrar esta mensagem\n" +
		"/ai — ligar ou desligar a IA\n" +
		"/provider <nome> — trocar o provedor de IA\n" +
		"/dummy — parar de consultar qualquer IA\n" +
		"/sentiment — analisar o sentimento da sua próxima mensagem\n" +
		"/save <título> — salvar sua próxima mensagem como nota\n" +
		"/notes — listar coleções do workspace\n" +
		"/search <busca> — pesquisar no workspace",
	aiEnabled:        "✅ IA ativada usando %s.",
	aiDisabled:       "💤 IA desativada. Use /ai para ativar novamente.",
	providerSwitched: "🔁 Provedor alterado para %s.",
	unknownProvider:  "Não conheço o provedor %q. Provedores disponíveis:",
	providerHint:     "/provider %s — %s",
	dummyBanner:      "🤖 Modo dummy ativado. Não vou consultar nenhuma IA. Reative um provedor com:",
	dummyReply:       "Não posso responder, o modo dummy está ativo. Ative um provedor com:",
	disabledReply:    "A IA está desativada. Use /ai para ativá-la.",
	armedNote:        "📝 Certo. Envie o conteúdo da nota %q.",
	armedSentiment:   "🔍 Envie o texto que você quer analisar.",
	usageSave:        "Uso: /save <título> — ex.: /save Notas da reunião",
	usageSearch:      "Uso: /search <busca> — ex.: /search roadmap",
	noteSaved:        "📝 Nota %q salva: %s",
	truncationNotice: "⚠️ A nota tinha mais de %d caracteres e foi truncada.",
	collectionsEmpty: "Nenhuma coleção foi compartilhada comigo ainda.",
	collectionsHead:  "📚 Coleções do workspace:",
	collectionLine:   "• %s (%s)",
	searchEmpty:      "Nenhuma página corresponde à sua busca.",
	searchHead:       "🔎 Resultados da busca:",
	searchLine:       "• %s — %s (editado em %s)",
	sentimentHead:    "🔍 Análise de sentimento:",
	sentimentLine:    "%s: %s (%.0f%% de confiança)",
	sentimentEmpty:   "Nenhum provedor de sentimento retornou resultado. Tente novamente.",
	errTimeout:       "⏳ A solicitação expirou. Tente novamente.",
	errAuth:          "🔒 Não consegui autenticar no serviço remoto. Peça ao operador para verificar credenciais e permissões.",
	errNotFound:      "🤔 O recurso remoto não foi encontrado. Peça ao operador para verificar a configuração.",
	errGeneric:       "Desculpe, algo deu errado. Tente novamente mais tarde.",
	unknownCommand:   "Não conheço esse comando. Use /help para ver o que sei fazer.",
	emptyMessage:     "Por favor, envie uma mensagem de texto.",
}

var locales = map[string]*messageSet{
	"en": &english,
	"pt": &portuguese,
}

// sentimentVendors fixes the render order for the vendors the upstream is
// asked for; any extra vendors are appended alphabetically.
var sentimentVendors = []string{"amazon", "google"}

// Formatter renders dispatcher outcomes into user-facing text. It is pure
// and safe for concurrent use.
type Formatter struct {
	defaultLocale string
}

// NewFormatter creates a formatter that falls back to defaultLocale when
// a detected locale has no template set.
func NewFormatter(defaultLocale string) *Formatter {
	return &Formatter{defaultLocale: defaultLocale}
}

func (f *Formatter) messages(locale string) *messageSet {
	if m, ok := locales[locale]; ok {
		return m
	}
	if m, ok := locales[f.defaultLocale]; ok {
		return m
	}
	return &english
}

func (f *Formatter) Welcome(locale string) string { return f.messages(locale).welcome }
func (f *Formatter) Help(locale string) string    { return f.messages(locale).help }

func (f *Formatter) AIEnabled(locale string, p ai.Provider) string {
	return fmt.Sprintf(f.messages(locale).aiEnabled, ai.DisplayName(p))
}

func (f *Formatter) AIDisabled(locale string) string { return f.messages(locale).aiDisabled }

func (f *Formatter) ProviderSwitched(locale string, p ai.Provider) string {
	return fmt.Sprintf(f.messages(locale).providerSwitched, ai.DisplayName(p))
}

func (f *Formatter) UnknownProvider(locale, name string) string {
	m := f.messages(locale)
	return joinLines(fmt.Sprintf(m.unknownProvider, name), f.providerHints(m))
}

// DummyBanner confirms entering dummy mode, with activation hints.
func (f *Formatter) DummyBanner(locale string) string {
	m := f.messages(locale)
	return joinLines(m.dummyBanner, f.providerHints(m))
}

// DummyReply is the canned answer to any message while in dummy mode.
func (f *Formatter) DummyReply(locale string) string {
	m := f.messages(locale)
	return joinLines(m.dummyReply, f.providerHints(m))
}

func (f *Formatter) DisabledReply(locale string) string { return f.messages(locale).disabledReply }

func (f *Formatter) ArmedNote(locale, title string) string {
	return fmt.Sprintf(f.messages(locale).armedNote, title)
}

func (f *Formatter) ArmedSentiment(locale string) string { return f.messages(locale).armedSentiment }
func (f *Formatter) UsageSave(locale string) string      { return f.messages(locale).usageSave }
func (f *Formatter) UsageSearch(locale string) string    { return f.messages(locale).usageSearch }

// NoteSaved confirms a created note, appending a truncation notice when
// the workspace cut the body to its size limit.
func (f *Formatter) NoteSaved(locale string, entry *workspace.Entry) string {
	m := f.messages(locale)
	msg := fmt.Sprintf(m.noteSaved, entry.Title, entry.URL)
	if entry.Truncated {
		msg += "\n" + fmt.Sprintf(m.truncationNotice, workspace.MaxEntryBody)
	}
	return msg
}

func (f *Formatter) Collections(locale string, cols []workspace.Collection) string {
	m := f.messages(locale)
	if len(cols) == 0 {
		return m.collectionsEmpty
	}
	lines := make([]string, 0, len(cols))
	for _, c := range cols {
		lines = append(lines, fmt.Sprintf(m.collectionLine, c.Title, c.ID))
	}
	return joinLines(m.collectionsHead, lines)
}

func (f *Formatter) SearchResults(locale string, results []workspace.SearchResult) string {
	m := f.messages(locale)
	if len(results) == 0 {
		return m.searchEmpty
	}
	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, fmt.Sprintf(m.searchLine, r.Title, r.URL, r.LastEdited.Format("2006-01-02")))
	}
	return joinLines(m.searchHead, lines)
}

// SentimentReport renders per-vendor verdicts, omitting absent vendors.
func (f *Formatter) SentimentReport(locale string, verdicts map[string]ai.Sentiment) string {
	m := f.messages(locale)

	var lines []string
	seen := make(map[string]bool, len(sentimentVendors))
	for _, vendor := range sentimentVendors {
		seen[vendor] = true
		if v, ok := verdicts[vendor]; ok {
			lines = append(lines, fmt.Sprintf(m.sentimentLine, vendor, v.Label, v.Confidence*100))
		}
	}
	var extras []string
	for vendor := range verdicts {
		if !seen[vendor] {
			extras = append(extras, vendor)
		}
	}
	sort.Strings(extras)
	for _, vendor := range extras {
		v := verdicts[vendor]
		lines = append(lines, fmt.Sprintf(m.sentimentLine, vendor, v.Label, v.Confidence*100))
	}

	if len(lines) == 0 {
		return m.sentimentEmpty
	}
	return joinLines(m.sentimentHead, lines)
}

// Failure renders a classified collaborator error.
func (f *Formatter) Failure(locale string, kind ErrorKind) string {
	m := f.messages(locale)
	switch kind {
	case ErrorTimeout:
		return m.errTimeout
	case ErrorAuth:
		return m.errAuth
	case ErrorNotFound:
		return m.errNotFound
	default:
		return m.errGeneric
	}
}

func (f *Formatter) UnknownCommand(locale string) string { return f.messages(locale).unknownCommand }
func (f *Formatter) EmptyMessage(locale string) string   { return f.messages(locale).emptyMessage }

func (f *Formatter) providerHints(m *messageSet) []string {
	hints := make([]string, 0, len(ai.ListSelectable()))
	for _, p := range ai.ListSelectable() {
		hints = append(hints, fmt.Sprintf(m.providerHint, ai.CommandName(p), ai.DisplayName(p)))
	}
	return hints
}

func joinLines(head string, lines []string) string {
	return head + "\n" + strings.Join(lines, "\n")
}
