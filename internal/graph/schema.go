package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/the-wia/wia-backend/internal/models"
)

// NewSchema builds the executable schema around the resolver. Consumers see
// the queries hello, medias, media, me and the mutations knowMedia,
// createMedia, updateMedia, deleteMedia, register, login, logout,
// forgotPassword, changePassword.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	mediaTypeEnum := graphql.NewEnum(graphql.EnumConfig{
		Name:        "MediaType",
		Description: "Type of the media: anime | manga | videogame",
		Values: graphql.EnumValueConfigMap{
			"anime":     &graphql.EnumValueConfig{Value: models.MediaTypeAnime},
			"manga":     &graphql.EnumValueConfig{Value: models.MediaTypeManga},
			"videogame": &graphql.EnumValueConfig{Value: models.MediaTypeVideogame},
		},
	})

	imageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Image",
		Fields: graphql.Fields{
			"hasImage":  &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"imagePath": &graphql.Field{Type: graphql.String},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"firstName": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"lastName":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			// email is redacted per-field: only the session owner sees it
			"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: r.resolveUserEmail},
			"username":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"image":     &graphql.Field{Type: imageType},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	mediaType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Media",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"title":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"type":      &graphql.Field{Type: graphql.NewNonNull(mediaTypeEnum)},
			"image":     &graphql.Field{Type: imageType},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	knownMediaType := graphql.NewObject(graphql.ObjectConfig{
		Name: "KnownMedia",
		Fields: graphql.Fields{
			"userId":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"mediaId": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"knownAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	// user <-> knownMedia <-> media is cyclic; close the loop after creation
	userType.AddFieldConfig("knownMedias", &graphql.Field{Type: graphql.NewList(knownMediaType)})
	mediaType.AddFieldConfig("knownMedias", &graphql.Field{Type: graphql.NewList(knownMediaType)})
	knownMediaType.AddFieldConfig("user", &graphql.Field{Type: userType})
	knownMediaType.AddFieldConfig("media", &graphql.Field{Type: mediaType})

	paginatedMediasType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PaginatedMedias",
		Fields: graphql.Fields{
			"medias":  &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(mediaType)))},
			"hasMore": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		},
	})

	fieldErrorType := graphql.NewObject(graphql.ObjectConfig{
		Name: "FieldError",
		Fields: graphql.Fields{
			"field":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	userResponseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "UserResponse",
		Fields: graphql.Fields{
			"errors": &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(fieldErrorType))},
			"user":   &graphql.Field{Type: userType},
		},
	})

	imageInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ImageInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"hasImage":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Boolean)},
			"imagePath": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	mediaInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "MediaInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"type":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(mediaTypeEnum)},
			"image": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(imageInput)},
		},
	})

	updateMediaInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateMediaInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"id":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"title": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"type":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(mediaTypeEnum)},
			"image": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(imageInput)},
		},
	})

	registerInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "RegisterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"username":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"firstName": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"lastName":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: r.resolveHello,
			},
			"medias": &graphql.Field{
				Type: graphql.NewNonNull(paginatedMediasType),
				Args: graphql.FieldConfigArgument{
					"limit":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"cursor": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.resolveMedias,
			},
			"media": &graphql.Field{
				Type: mediaType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.resolveMedia,
			},
			"me": &graphql.Field{
				Type:    userType,
				Resolve: r.resolveMe,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"knowMedia": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"mediaId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"knownAt": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveKnowMedia,
			},
			"createMedia": &graphql.Field{
				Type: mediaType,
				Args: graphql.FieldConfigArgument{
					"options": &graphql.ArgumentConfig{Type: graphql.NewNonNull(mediaInput)},
				},
				Resolve: r.resolveCreateMedia,
			},
			"updateMedia": &graphql.Field{
				Type: mediaType,
				Args: graphql.FieldConfigArgument{
					"options": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateMediaInput)},
				},
				Resolve: r.resolveUpdateMedia,
			},
			"deleteMedia": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.resolveDeleteMedia,
			},
			"register": &graphql.Field{
				Type: graphql.NewNonNull(userResponseType),
				Args: graphql.FieldConfigArgument{
					"options": &graphql.ArgumentConfig{Type: graphql.NewNonNull(registerInput)},
				},
				Resolve: r.resolveRegister,
			},
			"login": &graphql.Field{
				Type: graphql.NewNonNull(userResponseType),
				Args: graphql.FieldConfigArgument{
					"usernameOrEmail": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveLogin,
			},
			"logout": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Boolean),
				Resolve: r.resolveLogout,
			},
			"forgotPassword": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveForgotPassword,
			},
			"changePassword": &graphql.Field{
				Type: graphql.NewNonNull(userResponseType),
				Args: graphql.FieldConfigArgument{
					"token":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"newPassword": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveChangePassword,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}
