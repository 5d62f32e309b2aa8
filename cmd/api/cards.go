package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/heart0018/OriginalProduct/internal/domain/cards"
	"github.com/heart0018/OriginalProduct/internal/params"
)

// listCardsHandler godoc
//
//	@Summary		List cards
//	@Description	Cards with their first reviews and the distance from the caller (or a fallback point).
//	@Tags			cards
//	@Produce		json
//	@Param			limit			query		int		false	"Page size, at most 10"	default(10)
//	@Param			offset			query		int		false	"Offset"				default(0)
//	@Param			region			query		string	false	"Comma separated regions to keep"
//	@Param			sort			query		string	false	"region to group by region rank"
//	@Param			region_order	query		string	false	"Comma separated region ranking"
//	@Param			lat				query		number	false	"Caller latitude"
//	@Param			lng				query		number	false	"Caller longitude"
//	@Success		200				{array}		cards.CardResponse
//	@Failure		500				{object}	errorBody
//	@Router			/cards [get]
func (app *application) listCardsHandler(w http.ResponseWriter, r *http.Request) {
	q := params.ParseCardQuery(r.URL.Query(), app.config.fallback)

	list, err := app.store.Cards.List(r.Context(), cards.ListFilter{
		Regions:      q.Regions,
		SortByRegion: q.SortByRegion,
		RegionOrder:  q.RegionOrder,
		Limit:        q.Limit,
		Offset:       q.Offset,
	})
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, cards.NewCardResponses(list, &q.Location)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getCardHandler godoc
//
//	@Summary	Get a card
//	@Tags		cards
//	@Produce	json
//	@Param		cardID	path		int		true	"Card ID"
//	@Param		lat		query		number	false	"Caller latitude"
//	@Param		lng		query		number	false	"Caller longitude"
//	@Success	200		{object}	cards.CardResponse
//	@Failure	404		{object}	errorBody
//	@Router		/cards/{cardID} [get]
func (app *application) getCardHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "cardID"), 10, 64)
	if err != nil || id < 1 {
		app.notFoundResponse(w, r, errors.New("invalid card id"))
		return
	}

	card, err := app.store.Cards.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, cards.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	loc := app.config.fallback
	if p, ok := params.ParseLocation(r.URL.Query()); ok {
		loc = p
	}

	if err := writeJSON(w, http.StatusOK, cards.NewCardResponse(*card, &loc)); err != nil {
		app.internalServerError(w, r, err)
	}
}
