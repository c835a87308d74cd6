package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"agentcity-be/internal/entity"
	"agentcity-be/internal/model"
)

type DispatchMapper struct{}

func NewDispatchMapper() *DispatchMapper {
	return &DispatchMapper{}
}

func (m *DispatchMapper) PlanToEntity(p *model.DispatchPlan) *entity.DispatchPlanRecord {
	if p == nil {
		return nil
	}
	return &entity.DispatchPlanRecord{
		Id:           p.Id,
		UserId:       p.UserId,
		ActivityList: decodeStrings(p.ActivityList),
		Location:     p.Location,
		Budget:       p.Budget,
		StartTime:    p.StartTime,
		EndTime:      p.EndTime,
		Preferences:  decodeStrings(p.Preferences),
		AgentsToCall: decodeStrings(p.AgentsToCall),
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
	}
}

func (m *DispatchMapper) PlanToModel(p *entity.DispatchPlanRecord) *model.DispatchPlan {
	if p == nil {
		return nil
	}
	return &model.DispatchPlan{
		Id:           p.Id,
		UserId:       p.UserId,
		ActivityList: encodeStrings(p.ActivityList),
		Location:     p.Location,
		Budget:       p.Budget,
		StartTime:    p.StartTime,
		EndTime:      p.EndTime,
		Preferences:  encodeStrings(p.Preferences),
		AgentsToCall: encodeStrings(p.AgentsToCall),
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
	}
}

func (m *DispatchMapper) PlansToEntities(plans []*model.DispatchPlan) []*entity.DispatchPlanRecord {
	entities := make([]*entity.DispatchPlanRecord, len(plans))
	for i, p := range plans {
		entities[i] = m.PlanToEntity(p)
	}
	return entities
}

func (m *DispatchMapper) TurnToEntity(t *model.PlanningTurn) *entity.PlanningTurn {
	if t == nil {
		return nil
	}
	return &entity.PlanningTurn{
		Id:           t.Id,
		UserId:       t.UserId,
		Role:         entity.TurnRole(t.Role),
		Content:      t.Content,
		ResponseType: t.ResponseType,
		CreatedAt:    t.CreatedAt,
	}
}

func (m *DispatchMapper) TurnToModel(t *entity.PlanningTurn) *model.PlanningTurn {
	if t == nil {
		return nil
	}
	return &model.PlanningTurn{
		Id:           t.Id,
		UserId:       t.UserId,
		Role:         string(t.Role),
		Content:      t.Content,
		ResponseType: t.ResponseType,
		CreatedAt:    t.CreatedAt,
	}
}

func (m *DispatchMapper) TurnsToEntities(turns []*model.PlanningTurn) []*entity.PlanningTurn {
	entities := make([]*entity.PlanningTurn, len(turns))
	for i, t := range turns {
		entities[i] = m.TurnToEntity(t)
	}
	return entities
}

func encodeStrings(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}

func decodeStrings(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return []string{}
	}
	return values
}
