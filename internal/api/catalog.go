package api

import "net/http"

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	respondData(w, s.content.Levels.All())
}

func (s *Server) handleAchievementList(w http.ResponseWriter, r *http.Request) {
	respondData(w, s.content.Achievements.All())
}

func (s *Server) handleEarnedAchievements(w http.ResponseWriter, r *http.Request) {
	respondData(w, s.progress.Record().EarnedAchievements)
}
