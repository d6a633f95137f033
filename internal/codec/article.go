package codec

import (
	"encoding/json"

	"atlas/internal/model"
)

// ArticleToEntity 文章行 → 实体
// JSON 文本列（coordinates/track_data/tags）解析失败时按缺失处理
func ArticleToEntity(row *TopicRow) *model.Article {
	if row == nil {
		return nil
	}
	a := &model.Article{
		ID:        row.TopicID,
		Title:     model.Localized(row.Title),
		CoverURL:  row.CoverURL,
		Content:   model.Localized(row.Content),
		AuthorID:  row.AuthorID,
		Status:    model.ArticleStatus(row.Status),
		CreatedAt: row.CreateTime,
		UpdatedAt: row.UpdateTime,
	}
	if !a.Status.IsValid() {
		a.Status = model.StatusDraft
	}
	if row.RegionID != nil {
		a.RegionID = *row.RegionID
	}
	if row.CategoryID != nil {
		a.CategoryID = *row.CategoryID
	}
	if row.Coordinates != nil {
		var c model.Coordinates
		if err := json.Unmarshal([]byte(*row.Coordinates), &c); err == nil {
			a.Coordinates = &c
		}
	}
	if row.TrackData != nil {
		a.TrackData = decodeTrack(*row.TrackData)
	}
	if row.Tags != nil {
		var tags []string
		if err := json.Unmarshal([]byte(*row.Tags), &tags); err == nil && len(tags) > 0 {
			a.TagIDs = tags
		}
	}
	return a
}

// ArticleToRow 文章实体 → 行
func ArticleToRow(e *model.Article) *TopicRow {
	if e == nil {
		return nil
	}
	row := &TopicRow{
		TopicID:    e.ID,
		Title:      e.Title.Primary(),
		CoverURL:   e.CoverURL,
		Content:    e.Content.Primary(),
		AuthorID:   e.AuthorID,
		Status:     string(e.Status),
		CreateTime: e.CreatedAt,
		UpdateTime: e.UpdatedAt,
	}
	if e.RegionID != "" {
		row.RegionID = strPtr(e.RegionID)
	}
	if e.CategoryID != "" {
		row.CategoryID = strPtr(e.CategoryID)
	}
	if e.Coordinates != nil {
		if b, err := json.Marshal(e.Coordinates); err == nil {
			row.Coordinates = strPtr(string(b))
		}
	}
	if len(e.TrackData) > 0 {
		row.TrackData = strPtr(encodeTrack(e.TrackData))
	}
	if len(e.TagIDs) > 0 {
		if b, err := json.Marshal(e.TagIDs); err == nil {
			row.Tags = strPtr(string(b))
		}
	}
	return row
}

// VersionToEntity 版本行 → 实体
func VersionToEntity(row *TopicVersionRow) *model.ArticleVersion {
	if row == nil {
		return nil
	}
	return &model.ArticleVersion{
		ID:                row.VersionID,
		ArticleID:         row.TopicID,
		ChangeDescription: row.ChangeDescription,
		AuthorID:          row.AuthorID,
		CreatedAt:         row.CreateTime,
	}
}

// VersionToRow 版本实体 → 行
func VersionToRow(e *model.ArticleVersion) *TopicVersionRow {
	if e == nil {
		return nil
	}
	return &TopicVersionRow{
		VersionID:         e.ID,
		TopicID:           e.ArticleID,
		ChangeDescription: e.ChangeDescription,
		AuthorID:          e.AuthorID,
		CreateTime:        e.CreatedAt,
	}
}

// 轨迹在列中存为 [[lat,lng],...] 的 JSON 数组
func encodeTrack(track []model.Coordinates) string {
	pairs := make([][2]float64, 0, len(track))
	for _, p := range track {
		pairs = append(pairs, [2]float64{p.Lat, p.Lng})
	}
	b, _ := json.Marshal(pairs)
	return string(b)
}

func decodeTrack(s string) []model.Coordinates {
	var pairs [][2]float64
	if err := json.Unmarshal([]byte(s), &pairs); err != nil || len(pairs) == 0 {
		return nil
	}
	track := make([]model.Coordinates, 0, len(pairs))
	for _, p := range pairs {
		track = append(track, model.Coordinates{Lat: p[0], Lng: p[1]})
	}
	return track
}
