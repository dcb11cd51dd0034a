// Package graph exposes the SpriteCollab data model over GraphQL.
package graph

import (
	"context"
	"strings"

	"github.com/graphql-go/graphql"

	"github.com/marius851000/spritecollab-srv/internal/cache"
	"github.com/marius851000/spritecollab-srv/internal/collab"
)

const apiVersion = "1.0"

// Source provides the data snapshot and the query cache. Implemented by
// *collab.SpriteCollab.
type Source interface {
	Data() *collab.Data
	Store() cache.Store
}

// URLs are the base URLs asset links are built from.
type URLs struct {
	SrvURL    string
	AssetsURL string
}

// UserResolver maps a Discord user ID to a display name. Implemented by
// *discord.Bot over its pre-warmed cache; nil when Discord is disabled.
type UserResolver interface {
	DisplayName(id string) (string, bool)
}

var creditType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Credit",
	Fields: graphql.Fields{
		"id":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"name":    &graphql.Field{Type: graphql.String},
		"contact": &graphql.Field{Type: graphql.String},
	},
})

var configType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Config",
	Fields: graphql.Fields{
		"portraitSize":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"portraitTileX":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"portraitTileY":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"emotions":           &graphql.Field{Type: graphql.NewList(graphql.String)},
		"actions":            &graphql.Field{Type: graphql.NewList(graphql.String)},
		"completionEmotions": &graphql.Field{Type: graphql.NewList(graphql.NewList(graphql.Int))},
		"completionActions":  &graphql.Field{Type: graphql.NewList(graphql.NewList(graphql.Int))},
	},
})

var emotionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Emotion",
	Fields: graphql.Fields{
		"emotion": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"locked":  &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"url":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var actionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Action",
	Fields: graphql.Fields{
		"action":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"locked":     &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"animUrl":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"offsetsUrl": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"shadowsUrl": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var portraitsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MonsterFormPortraits",
	Fields: graphql.Fields{
		"required":        &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"phase":           &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"creditPrimary":   &graphql.Field{Type: creditType},
		"creditSecondary": &graphql.Field{Type: graphql.NewList(creditType)},
		"modifiedDate":    &graphql.Field{Type: graphql.String},
		"sheetUrl":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"recolorSheetUrl": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"emotions":        &graphql.Field{Type: graphql.NewList(emotionType)},
		"emotionsFlipped": &graphql.Field{Type: graphql.NewList(emotionType)},
	},
})

var spritesType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MonsterFormSprites",
	Fields: graphql.Fields{
		"required":        &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"phase":           &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"creditPrimary":   &graphql.Field{Type: creditType},
		"creditSecondary": &graphql.Field{Type: graphql.NewList(creditType)},
		"modifiedDate":    &graphql.Field{Type: graphql.String},
		"animDataXmlUrl":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"zipUrl":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"recolorSheetUrl": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"actions":         &graphql.Field{Type: graphql.NewList(actionType)},
	},
})

var formType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MonsterForm",
	Fields: graphql.Fields{
		"monsterId": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"path":      &graphql.Field{Type: graphql.NewList(graphql.Int)},
		"fullPath":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"name":      &graphql.Field{Type: graphql.String},
		"fullName":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"canon":     &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"modreward": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"portraits": &graphql.Field{Type: portraitsType},
		"sprites":   &graphql.Field{Type: spritesType},
	},
})

var monsterType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Monster",
	Fields: graphql.Fields{
		"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"forms": &graphql.Field{Type: graphql.NewList(formType)},
	},
})

// NewSchema builds the query schema over the given source. users may be nil.
func NewSchema(src Source, urls URLs, users UserResolver) (graphql.Schema, error) {
	newBuilder := func() *builder {
		return &builder{d: src.Data(), urls: urls, users: users}
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"apiVersion": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return apiVersion, nil
				},
			},
			"config": &graphql.Field{
				Type: graphql.NewNonNull(configType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return newBuilder().config(), nil
				},
			},
			"credit": &graphql.Field{
				Type: creditType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					if c := newBuilder().credit(id); c != nil {
						return c, nil
					}
					return nil, nil
				},
			},
			"credits": &graphql.Field{
				Type: graphql.NewList(creditType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					d := src.Data()
					out := make([]interface{}, 0, len(d.CreditNames))
					for _, e := range d.CreditNames {
						out = append(out, map[string]interface{}{
							"id":      e.CreditID,
							"name":    e.Name,
							"contact": e.Contact,
						})
					}
					return out, nil
				},
			},
			"monster": &graphql.Field{
				Type: graphql.NewList(monsterType),
				Args: graphql.FieldConfigArgument{
					"filter": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					b := newBuilder()
					var ids []int
					if raw, ok := p.Args["filter"].([]interface{}); ok {
						for _, v := range raw {
							if id, ok := v.(int); ok {
								ids = append(ids, id)
							}
						}
					} else {
						ids = b.d.Tracker.MonsterIDs()
					}
					out := []interface{}{}
					for _, id := range ids {
						if g, ok := b.d.Tracker[id]; ok {
							out = append(out, b.monster(id, g))
						}
					}
					return out, nil
				},
			},
			"searchMonster": &graphql.Field{
				Type: graphql.NewList(monsterType),
				Args: graphql.FieldConfigArgument{
					"monsterName": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					name, _ := p.Args["monsterName"].(string)
					return searchMonster(p.Context, src, newBuilder(), name)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}

// searchMonster matches monster names case-insensitively. Hits are cached;
// empty results are not, so new monsters show up right after a refresh even
// if someone searched for them before.
func searchMonster(ctx context.Context, src Source, b *builder, name string) ([]interface{}, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	needle := strings.ToLower(name)
	return cache.Cached(ctx, src.Store(), "search_monster|"+needle, func(ctx context.Context) (cache.Behaviour[[]interface{}], error) {
		out := []interface{}{}
		for _, id := range b.d.Tracker.MonsterIDs() {
			g := b.d.Tracker[id]
			if strings.Contains(strings.ToLower(g.Name), needle) {
				out = append(out, b.monster(id, g))
			}
		}
		if len(out) == 0 {
			return cache.NoCache(out), nil
		}
		return cache.Cache(out), nil
	})
}
