package handler

import (
	"math"
	"net/http"

	"github.com/questkeeper-app/questkeeper/internal/character"
	"github.com/questkeeper-app/questkeeper/internal/domain"
	"github.com/questkeeper-app/questkeeper/internal/identity"
	"github.com/questkeeper-app/questkeeper/internal/logger"
)

// CharacterResponse carries the character snapshot plus the swatch color the
// UI renders for its avatar style.
type CharacterResponse struct {
	Character   domain.Character `json:"character"`
	AvatarColor string           `json:"avatar_color"`
}

// DerivedStatsResponse pairs rounded display values with the raw fractional stats
type DerivedStatsResponse struct {
	MaxHealth int                 `json:"max_health"`
	MaxMana   int                 `json:"max_mana"`
	Attack    int                 `json:"attack"`
	Defense   int                 `json:"defense"`
	Raw       domain.DerivedStats `json:"raw"`
}

// HandleGetCharacter returns the caller's character
// @Summary Get character
// @Description Get the caller's character, creating the default record the first time the user is seen
// @Tags character
// @Produce json
// @Success 200 {object} CharacterResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /character [get]
func HandleGetCharacter(svc character.Service, resolver identity.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := ResolveIdentity(w, r, resolver)
		if !ok {
			return
		}

		c, err := svc.GetOrCreate(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetCharacterFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, CharacterResponse{
			Character:   *c,
			AvatarColor: domain.AvatarColor(c.AvatarStyle),
		})
	}
}

// HandleGetDerivedStats returns the combat-facing stats for the caller's character
// @Summary Get derived stats
// @Description Compute max health, max mana, attack and defense from the character's attributes and level
// @Tags character
// @Produce json
// @Success 200 {object} DerivedStatsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /character/stats [get]
func HandleGetDerivedStats(svc character.Service, resolver identity.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := ResolveIdentity(w, r, resolver)
		if !ok {
			return
		}

		stats, err := svc.DerivedStats(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetStatsFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DerivedStatsResponse{
			MaxHealth: int(math.Round(stats.MaxHealth)),
			MaxMana:   int(math.Round(stats.MaxMana)),
			Attack:    int(math.Round(stats.Attack)),
			Defense:   int(math.Round(stats.Defense)),
			Raw:       stats,
		})
	}
}

// ChangeAvatarRequest selects an avatar style for the caller's character
type ChangeAvatarRequest struct {
	Style string `json:"style" validate:"required,notblank,max=50,excludesall=\x00\n\r\t"`
}

// HandleChangeAvatar stores an avatar style on the caller's character
// @Summary Change avatar style
// @Description Store the given avatar style. Styles outside the catalog are stored as given and render with the default swatch.
// @Tags character
// @Accept json
// @Produce json
// @Param request body ChangeAvatarRequest true "Style selection"
// @Success 200 {object} CharacterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /character/avatar [put]
func HandleChangeAvatar(svc character.Service, resolver identity.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := ResolveIdentity(w, r, resolver)
		if !ok {
			return
		}

		var req ChangeAvatarRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Change avatar"); err != nil {
			return
		}

		c, err := svc.ChangeAvatar(r.Context(), userID, req.Style)
		if err != nil {
			respondServiceError(w, r, ErrMsgChangeAvatarFailed, err)
			return
		}

		log.Info("Avatar changed", "user_id", userID, "style", req.Style)

		respondJSON(w, http.StatusOK, CharacterResponse{
			Character:   *c,
			AvatarColor: domain.AvatarColor(c.AvatarStyle),
		})
	}
}

// AvatarStylesResponse lists the selectable style catalog in render order
type AvatarStylesResponse struct {
	Styles []domain.AvatarStyleOption `json:"styles"`
}

// HandleGetAvatarStyles returns the avatar style catalog
// @Summary List avatar styles
// @Description List the selectable avatar styles with their swatch colors
// @Tags character
// @Produce json
// @Success 200 {object} AvatarStylesResponse
// @Router /avatar-styles [get]
func HandleGetAvatarStyles(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, AvatarStylesResponse{Styles: svc.AvatarStyles()})
	}
}
