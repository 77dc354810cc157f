package gin

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/onokeee/mindmap"
	"github.com/onokeee/mindmap/errors"
)

type MindmapHandler struct {
	Store         mindmap.MindmapStore
	Authenticator *Authenticator
}

func (h *MindmapHandler) RegisterRoutes(router *gin.Engine) {
	auth := h.Authenticator.Authenticate
	router.GET("/api/mindmaps/list", JSONFormatter(auth(h.List)))
	router.GET("/api/mindmap/:id", JSONFormatter(auth(h.Get)))
	router.POST("/api/mindmap", JSONFormatter(auth(h.Save)))
	router.DELETE("/api/mindmap/:id", JSONFormatter(auth(h.Delete)))
}

func (h *MindmapHandler) List(c *gin.Context) (interface{}, error) {
	infos, err := h.Store.List(session(c).UserID)
	if err != nil {
		return nil, errors.New("could not list maps", errors.WithCause(err))
	}

	if infos == nil {
		infos = []mindmap.MindmapInfo{}
	}
	return gin.H{"maps": infos}, nil
}

func (h *MindmapHandler) Get(c *gin.Context) (interface{}, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, errMapNotFound()
	}

	m, err := h.Store.Get(session(c).UserID, id)
	if err == mindmap.ErrNotFound {
		return nil, errMapNotFound()
	} else if err != nil {
		return nil, errors.New("could not get map", errors.WithCause(err))
	}

	// The payload is returned as the response body itself, enriched with the
	// map's name and id. A payload that is not a JSON object cannot take the
	// extra keys and gets nested instead.
	var payload map[string]interface{}
	if err := json.Unmarshal(m.Data, &payload); err != nil || payload == nil {
		payload = map[string]interface{}{"data": m.Data}
	}
	payload["map_name"] = m.Name
	payload["map_id"] = m.ID
	return payload, nil
}

func (h *MindmapHandler) Save(c *gin.Context) (interface{}, error) {
	var body struct {
		ID   int             `json:"id"`
		Name string          `json:"name"`
		Data json.RawMessage `json:"data"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, errors.New("invalid body", errors.BadRequest(), errors.WithCause(err))
	}

	if len(body.Data) == 0 || bytes.Equal(body.Data, []byte("null")) {
		return nil, errors.New("data is required", errors.BadRequest())
	}

	name := body.Name
	if name == "" {
		name = mindmap.DefaultName
	}

	m := mindmap.Mindmap{
		ID:     body.ID,
		UserID: session(c).UserID,
		Name:   name,
		Data:   body.Data,
	}
	err := h.Store.Upsert(&m)
	if err == mindmap.ErrDuplicateName {
		return nil, errors.New("name already used", errors.BadRequest())
	} else if err == mindmap.ErrNotFound {
		return nil, errMapNotFound()
	} else if err != nil {
		return nil, errors.New("could not save map", errors.WithCause(err))
	}

	return gin.H{"status": "success", "id": m.ID, "name": m.Name}, nil
}

func (h *MindmapHandler) Delete(c *gin.Context) (interface{}, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, errMapNotFound()
	}

	deleted, err := h.Store.Delete(session(c).UserID, id)
	if err != nil {
		return nil, errors.New("could not delete map", errors.WithCause(err))
	}
	if !deleted {
		return nil, errMapNotFound()
	}

	return gin.H{"status": "success"}, nil
}

func errMapNotFound() error {
	return errors.New("map not found", errors.NotFound())
}
