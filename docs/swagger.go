// Package docs Itinerary Microservice API.
//
// Микросервис туристических рекомендаций. Строит многодневные маршруты
// по городам Индонезии: подбирает места по категориям, ранжирует их
// гибридной моделью (контентная близость + латентно-факторные предсказания)
// и жадно распределяет по дням с учетом лимитов времени и бюджета.
//
// Основные возможности:
// - Построение многодневного маршрута с учетом истории оценок пользователя
// - Cold start для новых пользователей через топовые категории города
// - Поиск рейсов между городами с сортировкой по цене
// - Прием новых оценок через Redis Streams (отдельный воркер)
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
