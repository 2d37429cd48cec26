package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"legalflow/pkg/chat"
	"legalflow/pkg/compliance"
	"legalflow/pkg/regulation"
	"legalflow/pkg/session"
	"legalflow/pkg/version"

	"github.com/gin-gonic/gin"
)

const upstreamErrorDetail = "Unable to connect to LegalFlow Agent."

type indexData struct {
	Brand         string
	Badge         string
	Headline      string
	Lead          string
	CallToAction  string
	KnowledgeHdr  string
	KnowledgeSub  string
	Regulations   []regulation.Regulation
	AgentTitle    string
	EmptyState    string
	AnswerLabel   string
	Disclaimer    string
	Placeholder   string
	LoadingSteps  []string
	LoadingMillis int64
	StorageKey    string
	ErrorMessage  string
	RateLimit     string
	RateFallback  string
	Version       string
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", indexData{
		Brand:         regulation.Brand,
		Badge:         regulation.Badge,
		Headline:      regulation.Headline,
		Lead:          regulation.Lead,
		CallToAction:  regulation.CallToAction,
		KnowledgeHdr:  regulation.KnowledgeHdr,
		KnowledgeSub:  regulation.KnowledgeSub,
		Regulations:   regulation.KnowledgeBase(),
		AgentTitle:    regulation.AgentTitle,
		EmptyState:    regulation.EmptyState,
		AnswerLabel:   regulation.AnswerLabel,
		Disclaimer:    regulation.Disclaimer,
		Placeholder:   regulation.Placeholder,
		LoadingSteps:  chat.LoadingSteps(),
		LoadingMillis: chat.LoadingInterval.Milliseconds(),
		StorageKey:    session.StorageKey,
		ErrorMessage:  chat.ConnectionErrorMessage,
		RateLimit:     chat.RateLimitPrefix,
		RateFallback:  compliance.DefaultRateLimitDetail,
		Version:       version.Version,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version.Version,
	})
}

// handleChat forwards one turn to the agent. A blank thread id gets a fresh
// one so the browser can persist it from the response.
func (s *Server) handleChat(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var req compliance.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "message must not be empty"})
		return
	}

	threadID := strings.TrimSpace(req.ThreadID)
	if threadID == "" {
		threadID = session.NewThreadID()
		slog.Debug("proxy_thread_id_generated", "thread_id", threadID)
	}

	reply := chat.Exchange(c.Request.Context(), s.sender, threadID, message)
	if reply.Err != nil {
		var rlErr *compliance.RateLimitError
		if errors.As(reply.Err, &rlErr) {
			c.JSON(http.StatusTooManyRequests, gin.H{"detail": rlErr.Detail})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"detail": upstreamErrorDetail})
		return
	}

	resp := reply.Response
	if resp.ThreadID == "" {
		resp.ThreadID = threadID
	}
	c.JSON(http.StatusOK, resp)
}
