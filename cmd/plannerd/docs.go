package main

// General API documentation for swaggo. Regenerate with `swag init -g cmd/plannerd/docs.go`.
//
// @title           plannerd API
// @version         1.0
// @description     Local HTTP API backing the game-dev planner UI: model session
// @description     lifecycle, streaming text generation, model catalog and
// @description     planning-project persistence.
//
// @BasePath  /
//
// @schemes http
