package http

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/lexibazaar/marketplace/internal/services"
)

const coverFileField = "cover_image_file"

// formOverhead is the room left for the text fields of a multipart request
// on top of the upload limit.
const formOverhead = 1 << 20

type DictionaryController struct {
	dictionaries   *services.DictionaryService
	words          *services.WordService
	maxUploadBytes int64
}

func NewDictionaryController(dictionaries *services.DictionaryService, words *services.WordService, maxUploadBytes int64) *DictionaryController {
	return &DictionaryController{
		dictionaries:   dictionaries,
		words:          words,
		maxUploadBytes: maxUploadBytes,
	}
}

// Create handles POST /dictionaries/create.
func (dc *DictionaryController) Create(c *gin.Context) {
	in, upload, ok := dc.bindInput(c)
	if !ok {
		return
	}

	view, err := dc.dictionaries.Create(c.Request.Context(), GetUserID(c), in, upload, baseURL(c))
	if err != nil {
		respondError(c, err, "create dictionary")
		return
	}
	c.JSON(http.StatusCreated, view)
}

// List handles GET /dictionaries: owned plus purchased.
func (dc *DictionaryController) List(c *gin.Context) {
	views, err := dc.dictionaries.ListAccessible(c.Request.Context(), GetUserID(c), baseURL(c))
	if err != nil {
		respondError(c, err, "list dictionaries")
		return
	}
	c.JSON(http.StatusOK, views)
}

// Detail handles GET /dictionaries/:id.
func (dc *DictionaryController) Detail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := dc.dictionaries.Get(c.Request.Context(), GetUserID(c), id, baseURL(c))
	if err != nil {
		respondError(c, err, "get dictionary")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Update handles PUT and PATCH /dictionaries/:id. Both are partial.
func (dc *DictionaryController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	in, upload, ok := dc.bindInput(c)
	if !ok {
		return
	}

	view, err := dc.dictionaries.Update(c.Request.Context(), GetUserID(c), id, in, upload, baseURL(c))
	if err != nil {
		respondError(c, err, "update dictionary")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Delete handles DELETE /dictionaries/:id.
func (dc *DictionaryController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := dc.dictionaries.Delete(c.Request.Context(), GetUserID(c), id); err != nil {
		respondError(c, err, "delete dictionary")
		return
	}
	c.Status(http.StatusNoContent)
}

// Words handles GET /dictionaries/:id/words.
func (dc *DictionaryController) Words(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	words, err := dc.words.List(c.Request.Context(), GetUserID(c), id)
	if err != nil {
		respondError(c, err, "list words")
		return
	}
	c.JSON(http.StatusOK, words)
}

// bindInput reads a dictionary payload from JSON or from a form, with an
// optional cover upload in the multipart case.
func (dc *DictionaryController) bindInput(c *gin.Context) (services.DictionaryInput, *multipart.FileHeader, bool) {
	var in services.DictionaryInput

	switch c.ContentType() {
	case gin.MIMEMultipartPOSTForm:
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, dc.maxUploadBytes+formOverhead)
		if err := c.Request.ParseMultipartForm(formOverhead); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusBadRequest, ErrorResponse{
					Error:   "request body too large",
					Code:    CodeValidation,
					Details: map[string]string{coverFileField: "File is too large."},
				})
				return in, nil, false
			}
			respondBadRequest(c, "invalid form data")
			return in, nil, false
		}
		upload, err := c.FormFile(coverFileField)
		if err != nil && !errors.Is(err, http.ErrMissingFile) {
			respondBadRequest(c, "invalid "+coverFileField)
			return in, nil, false
		}
		if in, err = dictionaryInputFromForm(c.Request.PostForm); err != nil {
			respondError(c, err, "parse form")
			return in, nil, false
		}
		return in, upload, true

	case gin.MIMEPOSTForm:
		if err := c.Request.ParseForm(); err != nil {
			respondBadRequest(c, "invalid form data")
			return in, nil, false
		}
		in, err := dictionaryInputFromForm(c.Request.PostForm)
		if err != nil {
			respondError(c, err, "parse form")
			return in, nil, false
		}
		return in, nil, true

	default:
		return in, nil, bindJSON(c, &in)
	}
}

// dictionaryInputFromForm converts form values into a partial input. Only
// keys present in the form are set.
func dictionaryInputFromForm(form url.Values) (services.DictionaryInput, error) {
	var in services.DictionaryInput
	problems := map[string]string{}

	value := func(key string) *string {
		vs, ok := form[key]
		if !ok || len(vs) == 0 {
			return nil
		}
		v := vs[0]
		return &v
	}
	boolean := func(key string) *bool {
		raw := value(key)
		if raw == nil {
			return nil
		}
		b, err := parseFormBool(*raw)
		if err != nil {
			problems[key] = "Must be a valid boolean."
			return nil
		}
		return &b
	}

	in.Name = value("name")
	in.Description = value("description")
	in.SourceLang = value("source_lang")
	in.TargetLang = value("target_lang")
	in.CoverImage = value("cover_image")
	in.AllowTemporaryAccess = boolean("allow_temporary_access")
	in.IsForSale = boolean("is_for_sale")

	if raw := value("price"); raw != nil {
		price, err := decimal.NewFromString(strings.TrimSpace(*raw))
		if err != nil {
			problems["price"] = "A valid number is required."
		} else {
			in.Price = &price
		}
	}
	if raw := value("temporary_days"); raw != nil {
		days, err := strconv.Atoi(strings.TrimSpace(*raw))
		if err != nil {
			problems["temporary_days"] = "A valid integer is required."
		} else {
			in.TemporaryDays = &days
		}
	}

	if len(problems) > 0 {
		return in, services.ValidationError("invalid form data", problems)
	}
	return in, nil
}

func parseFormBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	return strconv.ParseBool(raw)
}
