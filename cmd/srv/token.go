package main

import (
	"fmt"

	"github.com/cleanmate-lab/admin-backend/internal/model"
	"github.com/cleanmate-lab/admin-backend/pkg/authenticator"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startToken(cctx *cli.Context) error {
	s.loadConfig(cctx)

	accessToken := model.AccessToken{
		ID:   cctx.String("id"),
		Name: cctx.String("name"),
	}

	engine := authenticator.NewTokenEngine[model.AccessToken](
		xcontext.Configs(s.ctx).Auth.AccessToken)
	token, err := engine.Generate(accessToken.ID, accessToken)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
