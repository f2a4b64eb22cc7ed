package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qs-lzh/fyyur-trivia/internal/app"
	"github.com/qs-lzh/fyyur-trivia/internal/service"
	"github.com/qs-lzh/fyyur-trivia/web"
)

type FyyurHandler struct {
	app     *app.App
	flashes FlashStore
	logger  *zap.Logger
}

func NewFyyurHandler(app *app.App, flashes FlashStore) *FyyurHandler {
	return &FyyurHandler{
		app:     app,
		flashes: flashes,
		logger:  app.Logger,
	}
}

// NewFyyurRouter builds the listings site. It needs app.Cache for flash messages.
func NewFyyurRouter(app *app.App) (*gin.Engine, error) {
	if app.Cache == nil {
		return nil, errors.New("fyyur site needs a redis cache for flash messages")
	}
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	h := NewFyyurHandler(app, app.Cache)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(RequestLogger(app.Logger), Recovery(app.Logger, h.HandleServerError), Session(app.Config.SessionCookie))

	r.GET("/", h.HandleHome)

	r.GET("/venues", h.HandleListVenues)
	r.POST("/venues/search", h.HandleSearchVenues)
	r.GET("/venues/create", h.HandleCreateVenueForm)
	r.POST("/venues/create", h.HandleCreateVenue)
	r.GET("/venues/:id", h.HandleShowVenue)
	r.DELETE("/venues/:id", h.HandleDeleteVenue)
	r.GET("/venues/:id/edit", h.HandleEditVenueForm)
	r.POST("/venues/:id/edit", h.HandleEditVenue)

	r.GET("/artists", h.HandleListArtists)
	r.POST("/artists/search", h.HandleSearchArtists)
	r.GET("/artists/create", h.HandleCreateArtistForm)
	r.POST("/artists/create", h.HandleCreateArtist)
	r.GET("/artists/:id", h.HandleShowArtist)
	r.GET("/artists/:id/edit", h.HandleEditArtistForm)
	r.POST("/artists/:id/edit", h.HandleEditArtist)

	r.GET("/shows", h.HandleListShows)
	r.GET("/shows/create", h.HandleCreateShowForm)
	r.POST("/shows/create", h.HandleCreateShow)

	r.NoRoute(h.HandleNotFound)

	return r, nil
}

/*
* rendering and flash helpers
 */

func (h *FyyurHandler) flash(c *gin.Context, message string) {
	if err := h.flashes.PushFlash(c.Request.Context(), sessionID(c), message); err != nil {
		h.logger.Warn("failed to store flash message", zap.Error(err))
	}
}

// render pops the pending flash messages into the page data.
func (h *FyyurHandler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	messages, err := h.flashes.PopFlashes(c.Request.Context(), sessionID(c))
	if err != nil {
		h.logger.Warn("failed to read flash messages", zap.Error(err))
	}
	data["messages"] = messages
	c.HTML(status, name, data)
}

func (h *FyyurHandler) renderHome(c *gin.Context) {
	h.render(c, http.StatusOK, "pages/home.html", nil)
}

// fail renders the 404 page for ErrNotFound and the 500 page otherwise.
func (h *FyyurHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		h.HandleNotFound(c)
		return
	}
	h.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	h.HandleServerError(c)
}

func (h *FyyurHandler) HandleNotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "errors/404.html", nil)
}

func (h *FyyurHandler) HandleServerError(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, "errors/500.html", gin.H{})
	c.Abort()
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *FyyurHandler) HandleHome(c *gin.Context) {
	h.renderHome(c)
}

/*
* venues
 */

func (h *FyyurHandler) HandleListVenues(c *gin.Context) {
	areas, err := h.app.VenueService.ListVenueAreas(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "pages/venues.html", gin.H{"areas": areas})
}

func (h *FyyurHandler) HandleSearchVenues(c *gin.Context) {
	term := c.PostForm("search_term")
	results, err := h.app.VenueService.SearchVenues(c.Request.Context(), term)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "pages/search_venues.html", gin.H{"results": results, "search_term": term})
}

func (h *FyyurHandler) HandleShowVenue(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.HandleNotFound(c)
		return
	}
	venue, err := h.app.VenueService.GetVenueDetail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "pages/show_venue.html", gin.H{"venue": venue, "title": venue.Name})
}

func (h *FyyurHandler) venueFormData(form *VenueForm) gin.H {
	return gin.H{"form": form, "genre_choices": genreChoices, "states": stateChoices}
}

func (h *FyyurHandler) HandleCreateVenueForm(c *gin.Context) {
	h.render(c, http.StatusOK, "forms/new_venue.html", h.venueFormData(&VenueForm{}))
}

func (h *FyyurHandler) HandleCreateVenue(c *gin.Context) {
	var form VenueForm
	if err := c.ShouldBind(&form); err != nil {
		h.flash(c, fmt.Sprintf("Form validation failed. Venue %s could not be listed.", c.PostForm("name")))
		h.renderHome(c)
		return
	}

	venue := form.toModel()
	if err := h.app.VenueService.CreateVenue(c.Request.Context(), venue); err != nil {
		h.logger.Error("failed to create venue", zap.String("name", venue.Name), zap.Error(err))
		h.flash(c, fmt.Sprintf("An error occurred. Venue %s could not be listed.", venue.Name))
		h.renderHome(c)
		return
	}
	h.flash(c, fmt.Sprintf("Venue %s was successfully listed!", venue.Name))
	h.renderHome(c)
}

func (h *FyyurHandler) HandleDeleteVenue(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.HandleNotFound(c)
		return
	}
	venue, err := h.app.VenueService.DeleteVenue(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.HandleNotFound(c)
			return
		}
		h.logger.Error("failed to delete venue", zap.Uint("venue_id", id), zap.Error(err))
		h.flash(c, "An error occurred. Venue could not be deleted.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.flash(c, fmt.Sprintf("Venue %s was successfully deleted.", venue.Name))
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *FyyurHandler) HandleEditVenueForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.HandleNotFound(c)
		return
	}
	venue, err := h.app.VenueService.GetVenue(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	data := h.venueFormData(venueFormFrom(venue))
	data["id"] = venue.ID
	h.render(c, http.StatusOK, "forms/edit_venue.html", data)
}

func (h *FyyurHandler) HandleEditVenue(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.HandleNotFound(c)
		return
	}
	detailURL := fmt.Sprintf("/venues/%d", id)

	var form VenueForm
	if err := c.ShouldBind(&form); err != nil {
		h.flash(c, fmt.Sprintf("Form validation failed. Venue %s could not be updated.", c.PostForm("name")))
		c.Redirect(http.StatusSeeOther, detailURL)
		return
	}

	venue := form.toModel()
	if err := h.app.VenueService.UpdateVenue(c.Request.Context(), id, venue); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.HandleNotFound(c)
			return
		}
		h.logger.Error("failed to update venue", zap.Uint("venue_id", id), zap.Error(err))
		h.flash(c, fmt.Sprintf("An error occurred. Venue %s could not be updated.", venue.Name))
		c.Redirect(http.StatusSeeOther, detailURL)
		return
	}
	h.flash(c, fmt.Sprintf("Venue %s was successfully updated!", venue.Name))
	c.Redirect(http.StatusSeeOther, detailURL)
}

/*
* artists
 */

func (h *FyyurHandler) HandleListArtists(c *gin.Context) {
	artists, err := h.app.ArtistService.ListArtists(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "pages/artists.html", gin.H{"artists": artists})
}

func (h *FyyurHandler) HandleSearchArtists(c *gin.Context) {
	term := c.PostForm("search_term")
	results, err := h.app.ArtistService.SearchArtists(c.Request.Context(), term)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "pages/search_artists.html", gin.H{"results": results, "search_term": term})
}

func (h *FyyurHandler) HandleShowArtist(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.HandleNotFound(c)
		return
	}
	artist, err := h.app.ArtistService.GetArtistDetail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "pages/show_artist.html", gin.H{"artist": artist, "title": artist.Name})
}

func (h *FyyurHandler) artistFormData(form *ArtistForm) gin.H {
	return gin.H{"form": form, "genre_choices": genreChoices, "states": stateChoices}
}

func (h *FyyurHandler) HandleCreateArtistForm(c *gin.Context) {
	h.render(c, http.StatusOK, "forms/new_artist.html", h.artistFormData(&ArtistForm{}))
}

func (h *FyyurHandler) HandleCreateArtist(c *gin.Context) {
	var form ArtistForm
	if err := c.ShouldBind(&form); err != nil {
		h.flash(c, fmt.Sprintf("Form validation failed. Artist %s could not be listed.", c.PostForm("name")))
		h.renderHome(c)
		return
	}

	artist := form.toModel()
	if err := h.app.ArtistService.CreateArtist(c.Request.Context(), artist); err != nil {
		h.logger.Error("failed to create artist", zap.String("name", artist.Name), zap.Error(err))
		h.flash(c, fmt.Sprintf("An error occurred. Artist %s could not be listed.", artist.Name))
		h.renderHome(c)
		return
	}
	h.flash(c, fmt.Sprintf("Artist %s was successfully listed!", artist.Name))
	h.renderHome(c)
}

func (h *FyyurHandler) HandleEditArtistForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.HandleNotFound(c)
		return
	}
	artist, err := h.app.ArtistService.GetArtist(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	data := h.artistFormData(artistFormFrom(artist))
	data["id"] = artist.ID
	h.render(c, http.StatusOK, "forms/edit_artist.html", data)
}

func (h *FyyurHandler) HandleEditArtist(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.HandleNotFound(c)
		return
	}
	detailURL := fmt.Sprintf("/artists/%d", id)

	var form ArtistForm
	if err := c.ShouldBind(&form); err != nil {
		h.flash(c, fmt.Sprintf("Form validation failed. Artist %s could not be updated.", c.PostForm("name")))
		c.Redirect(http.StatusSeeOther, detailURL)
		return
	}

	artist := form.toModel()
	if err := h.app.ArtistService.UpdateArtist(c.Request.Context(), id, artist); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.HandleNotFound(c)
			return
		}
		h.logger.Error("failed to update artist", zap.Uint("artist_id", id), zap.Error(err))
		h.flash(c, fmt.Sprintf("An error occurred. Artist %s could not be updated.", artist.Name))
		c.Redirect(http.StatusSeeOther, detailURL)
		return
	}
	h.flash(c, "Artist information was successfully updated.")
	c.Redirect(http.StatusSeeOther, detailURL)
}

/*
* shows
 */

func (h *FyyurHandler) HandleListShows(c *gin.Context) {
	shows, err := h.app.ShowService.ListShows(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "pages/shows.html", gin.H{"shows": shows})
}

func (h *FyyurHandler) HandleCreateShowForm(c *gin.Context) {
	h.render(c, http.StatusOK, "forms/new_show.html", gin.H{"form": &ShowForm{}})
}

func (h *FyyurHandler) HandleCreateShow(c *gin.Context) {
	var form ShowForm
	if err := c.ShouldBind(&form); err != nil {
		h.flash(c, "Form validation failed. Show could not be listed.")
		h.renderHome(c)
		return
	}
	show, err := form.toModel()
	if err != nil {
		h.flash(c, "Form validation failed. Show could not be listed.")
		h.renderHome(c)
		return
	}

	if err := h.app.ShowService.CreateShow(c.Request.Context(), show); err != nil {
		h.logger.Error("failed to create show",
			zap.Uint("venue_id", show.VenueID),
			zap.Uint("artist_id", show.ArtistID),
			zap.Error(err))
		h.flash(c, "An error occurred. Show could not be listed.")
		h.renderHome(c)
		return
	}
	h.flash(c, "Show was successfully listed!")
	h.renderHome(c)
}
