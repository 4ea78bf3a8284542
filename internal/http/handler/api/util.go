package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/InterNutter/instants/internal/core/model"
	"github.com/pkg/errors"
)

const lastStoryID = "last"

func getStoryNumber(r *http.Request) (model.StoryNumber, error) {
	raw := r.PathValue("storyID")

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(model.ErrInvalidStory, "invalid story identifier '%s'", raw)
	}

	number := model.StoryNumber(value)

	if err := number.Validate(); err != nil {
		return 0, errors.WithStack(err)
	}

	return number, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	decoder := json.NewDecoder(r.Body)

	if err := decoder.Decode(v); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
