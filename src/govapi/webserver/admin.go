package webserver

import (
	"log"
	"net/http"

	"github.com/bthh/CF1-Claude-sub007/src/govapi/data"
	"github.com/bthh/CF1-Claude-sub007/src/govapi/types"
	"github.com/bthh/CF1-Claude-sub007/src/governance"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Admin struct {
	engine *governance.Engine
	db     *gorm.DB
}

func NewAdmin(engine *governance.Engine, db *gorm.DB) Admin {
	return Admin{engine: engine, db: db}
}

// Queue lists everything awaiting an administrative decision.
func (a Admin) Queue(c *gin.Context) {
	ps, err := a.engine.GetProposalsForAdmin()
	if err != nil {
		writeError(c, err)
		return
	}

	views := make([]governance.ProposalView, len(ps))
	for i, p := range ps {
		views[i] = a.engine.ViewOf(p)
	}
	c.JSON(http.StatusOK, gin.H{"proposals": views})
}

func (a Admin) BeginReview(c *gin.Context) {
	id := c.Param("id")
	reviewer := c.GetString("addr")

	p, err := a.engine.BeginReview(id, reviewer)
	if err != nil {
		writeError(c, err)
		return
	}

	log.Printf("admin %s reviewing proposal %s", reviewer, id)
	c.JSON(http.StatusOK, a.engine.ViewOf(p))
}

func (a Admin) Approve(c *gin.Context) {
	var req struct {
		Comments string `json:"comments" binding:"max=2000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	id := c.Param("id")
	reviewer := c.GetString("addr")

	p, err := a.engine.ApproveProposal(id, reviewer, req.Comments)
	if err != nil {
		writeError(c, err)
		return
	}

	log.Printf("admin %s approved proposal %s, voting open until %v", reviewer, id, p.EndDate)
	c.JSON(http.StatusOK, a.engine.ViewOf(p))
}

func (a Admin) Reject(c *gin.Context) {
	var req struct {
		Comments string `json:"comments" binding:"max=2000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	id := c.Param("id")
	reviewer := c.GetString("addr")

	p, err := a.engine.RejectProposal(id, reviewer, req.Comments)
	if err != nil {
		writeError(c, err)
		return
	}

	log.Printf("admin %s rejected proposal %s", reviewer, id)
	c.JSON(http.StatusOK, a.engine.ViewOf(p))
}

// RequestChanges sends a proposal back to its author. Comments are
// mandatory here: the author needs to know what to fix.
func (a Admin) RequestChanges(c *gin.Context) {
	var req struct {
		Comments string `json:"comments" binding:"required,min=1,max=2000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	id := c.Param("id")
	reviewer := c.GetString("addr")

	p, err := a.engine.RequestChanges(id, reviewer, req.Comments)
	if err != nil {
		writeError(c, err)
		return
	}

	log.Printf("admin %s requested changes on proposal %s", reviewer, id)
	c.JSON(http.StatusOK, a.engine.ViewOf(p))
}

// SetSetting upserts one platform setting and refreshes the cache so the
// change applies immediately.
func (a Admin) SetSetting(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required,min=1,max=32"`
		Value string `json:"value" binding:"max=256"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	var setting types.Setting
	err := a.db.Where(types.Setting{Name: req.Name}).
		Assign(types.Setting{Value: req.Value}).
		FirstOrCreate(&setting).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	if err := data.RefreshSettings(a.db); err != nil {
		log.Printf("settings refresh after update: %v", err)
	}

	log.Printf("admin %s set %s", c.GetString("addr"), req.Name)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
