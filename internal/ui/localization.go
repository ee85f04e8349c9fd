package ui

import (
	"errors"

	"github.com/ytget/deck-mobile/internal/board"
	"github.com/ytget/deck-mobile/internal/deck"
	"github.com/ytget/deck-mobile/internal/platform"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyAllBoards         = "all_boards"
	KeyCreateBoard       = "create_board"
	KeyBoardTitle        = "board_title"
	KeyRefresh           = "refresh"
	KeyNoBoards          = "no_boards"
	KeyLoading           = "loading"
	KeySettings          = "settings"
	KeyLanguage          = "language"
	KeyLogout            = "logout"
	KeyLogoutConfirm     = "logout_confirm"
	KeyRequestTimeout    = "request_timeout"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyCreate            = "create"
	KeySettingsSaved     = "settings_saved"
	KeyLogin             = "login"
	KeyServer            = "server"
	KeyUser              = "user"
	KeyPassword          = "password"
	KeyNoStacks          = "no_stacks"
	KeyStackTitle        = "stack_title"
	KeyCreateStack       = "create_stack"
	KeyCreateCard        = "create_card"
	KeyCardTitle         = "card_title"
	KeyCardDescription   = "card_description"
	KeyNoCards           = "no_cards"
	KeyDueDate           = "due_date"
	KeyOverdue           = "overdue"
	KeyLabels            = "labels"
	KeyDescription       = "description"
	KeyNoDescription     = "no_description"
	KeyMoveFailed        = "move_failed"
	KeyTitleRequired     = "title_required"
	KeyTitleTooLong      = "title_too_long"
	KeyLoginRequired     = "login_required"
	KeyInvalidServer     = "invalid_server"
	KeySessionExpired    = "session_expired"
	KeyRequestFailed     = "request_failed"
	KeySystemLanguage    = "system_language"
	KeyTimeoutSecondsFmt = "timeout_seconds_fmt"
	KeyUpdatedAtFmt      = "updated_at_fmt"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SupportedLanguages returns the language codes with translations, English first
func (l *Localization) SupportedLanguages() []string {
	return []string{"en", "fr", "de"}
}

// SetLanguage sets the current language. "system" picks the closest match
// to the operating system locale.
func (l *Localization) SetLanguage(lang string) {
	lang = platform.ResolveLanguage(lang, l.SupportedLanguages())

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"fr": "Français",
		"de": "Deutsch",
	}
}

// ErrorText turns an operation error into a message for the user
func (l *Localization) ErrorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, board.ErrMoveReverted):
		return l.GetText(KeyMoveFailed)
	case errors.Is(err, board.ErrEmptyTitle):
		return l.GetText(KeyTitleRequired)
	case errors.Is(err, board.ErrTitleTooLong):
		return l.GetText(KeyTitleTooLong)
	case errors.Is(err, board.ErrMissingLogin):
		return l.GetText(KeyLoginRequired)
	case errors.Is(err, deck.ErrInvalidServer):
		return l.GetText(KeyInvalidServer)
	case deck.IsUnauthorized(err), errors.Is(err, deck.ErrNotAuthenticated):
		return l.GetText(KeySessionExpired)
	default:
		return l.GetText(KeyRequestFailed) + ": " + err.Error()
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Deck",
		KeyAllBoards:         "All boards",
		KeyCreateBoard:       "Create board",
		KeyBoardTitle:        "Board title",
		KeyRefresh:           "Refresh",
		KeyNoBoards:          "No boards yet",
		KeyLoading:           "Loading...",
		KeySettings:          "Settings",
		KeyLanguage:          "Language",
		KeyLogout:            "Log out",
		KeyLogoutConfirm:     "Log out and revoke this device's app password?",
		KeyRequestTimeout:    "Request timeout",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyCreate:            "Create",
		KeySettingsSaved:     "Settings saved",
		KeyLogin:             "Log in",
		KeyServer:            "Server address",
		KeyUser:              "User name",
		KeyPassword:          "Password",
		KeyNoStacks:          "This board has no stack yet. Create one to add cards.",
		KeyStackTitle:        "Stack title",
		KeyCreateStack:       "Create stack",
		KeyCreateCard:        "Create card",
		KeyCardTitle:         "Card title",
		KeyCardDescription:   "Description (Markdown)",
		KeyNoCards:           "No cards in this stack",
		KeyDueDate:           "Due",
		KeyOverdue:           "Overdue",
		KeyLabels:            "Labels",
		KeyDescription:       "Description",
		KeyNoDescription:     "No description",
		KeyMoveFailed:        "The card could not be moved and was put back",
		KeyTitleRequired:     "Please enter a title",
		KeyTitleTooLong:      "The title is too long",
		KeyLoginRequired:     "Server, user name and password are required",
		KeyInvalidServer:     "Invalid server address",
		KeySessionExpired:    "Your session has expired, please log in again",
		KeyRequestFailed:     "Request failed",
		KeySystemLanguage:    "System default",
		KeyTimeoutSecondsFmt: "%d seconds",
		KeyUpdatedAtFmt:      "Updated at %s",
	}

	// French texts
	l.texts["fr"] = map[string]string{
		KeyAppTitle:          "Deck",
		KeyAllBoards:         "Tous les tableaux",
		KeyCreateBoard:       "Créer un tableau",
		KeyBoardTitle:        "Titre du tableau",
		KeyRefresh:           "Actualiser",
		KeyNoBoards:          "Aucun tableau",
		KeyLoading:           "Chargement...",
		KeySettings:          "Paramètres",
		KeyLanguage:          "Langue",
		KeyLogout:            "Se déconnecter",
		KeyLogoutConfirm:     "Se déconnecter et révoquer le mot de passe d'application de cet appareil ?",
		KeyRequestTimeout:    "Délai des requêtes",
		KeySave:              "Enregistrer",
		KeyCancel:            "Annuler",
		KeyCreate:            "Créer",
		KeySettingsSaved:     "Paramètres enregistrés",
		KeyLogin:             "Se connecter",
		KeyServer:            "Adresse du serveur",
		KeyUser:              "Nom d'utilisateur",
		KeyPassword:          "Mot de passe",
		KeyNoStacks:          "Ce tableau n'a pas encore de liste. Créez-en une pour ajouter des cartes.",
		KeyStackTitle:        "Titre de la liste",
		KeyCreateStack:       "Créer une liste",
		KeyCreateCard:        "Créer une carte",
		KeyCardTitle:         "Titre de la carte",
		KeyCardDescription:   "Description (Markdown)",
		KeyNoCards:           "Aucune carte dans cette liste",
		KeyDueDate:           "Échéance",
		KeyOverdue:           "En retard",
		KeyLabels:            "Étiquettes",
		KeyDescription:       "Description",
		KeyNoDescription:     "Pas de description",
		KeyMoveFailed:        "La carte n'a pas pu être déplacée et a été remise en place",
		KeyTitleRequired:     "Veuillez saisir un titre",
		KeyTitleTooLong:      "Le titre est trop long",
		KeyLoginRequired:     "Serveur, nom d'utilisateur et mot de passe sont requis",
		KeyInvalidServer:     "Adresse de serveur invalide",
		KeySessionExpired:    "Votre session a expiré, veuillez vous reconnecter",
		KeyRequestFailed:     "Échec de la requête",
		KeySystemLanguage:    "Langue du système",
		KeyTimeoutSecondsFmt: "%d secondes",
		KeyUpdatedAtFmt:      "Mis à jour à %s",
	}

	// German texts
	l.texts["de"] = map[string]string{
		KeyAppTitle:          "Deck",
		KeyAllBoards:         "Alle Boards",
		KeyCreateBoard:       "Board erstellen",
		KeyBoardTitle:        "Board-Titel",
		KeyRefresh:           "Aktualisieren",
		KeyNoBoards:          "Noch keine Boards",
		KeyLoading:           "Wird geladen...",
		KeySettings:          "Einstellungen",
		KeyLanguage:          "Sprache",
		KeyLogout:            "Abmelden",
		KeyLogoutConfirm:     "Abmelden und das App-Passwort dieses Geräts widerrufen?",
		KeyRequestTimeout:    "Zeitlimit für Anfragen",
		KeySave:              "Speichern",
		KeyCancel:            "Abbrechen",
		KeyCreate:            "Erstellen",
		KeySettingsSaved:     "Einstellungen gespeichert",
		KeyLogin:             "Anmelden",
		KeyServer:            "Serveradresse",
		KeyUser:              "Benutzername",
		KeyPassword:          "Passwort",
		KeyNoStacks:          "Dieses Board hat noch keine Liste. Erstelle eine, um Karten hinzuzufügen.",
		KeyStackTitle:        "Titel der Liste",
		KeyCreateStack:       "Liste erstellen",
		KeyCreateCard:        "Karte erstellen",
		KeyCardTitle:         "Titel der Karte",
		KeyCardDescription:   "Beschreibung (Markdown)",
		KeyNoCards:           "Keine Karten in dieser Liste",
		KeyDueDate:           "Fällig",
		KeyOverdue:           "Überfällig",
		KeyLabels:            "Labels",
		KeyDescription:       "Beschreibung",
		KeyNoDescription:     "Keine Beschreibung",
		KeyMoveFailed:        "Die Karte konnte nicht verschoben werden und wurde zurückgesetzt",
		KeyTitleRequired:     "Bitte einen Titel eingeben",
		KeyTitleTooLong:      "Der Titel ist zu lang",
		KeyLoginRequired:     "Server, Benutzername und Passwort sind erforderlich",
		KeyInvalidServer:     "Ungültige Serveradresse",
		KeySessionExpired:    "Deine Sitzung ist abgelaufen, bitte melde dich erneut an",
		KeyRequestFailed:     "Anfrage fehlgeschlagen",
		KeySystemLanguage:    "Systemsprache",
		KeyTimeoutSecondsFmt: "%d Sekunden",
		KeyUpdatedAtFmt:      "Aktualisiert um %s",
	}
}
