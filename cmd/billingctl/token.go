package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hugohenrick/billing-dashboard/internal/config"
	"github.com/hugohenrick/billing-dashboard/pkg/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite um token JWT de acesso à API",
	Long: `Emite um token JWT assinado com JWT_SECRET_KEY. O owner informado
identifica o dono dos dados: clientes, faturas, pagamentos e perfil
ficam isolados por owner no PostgreSQL.`,
	Example: `  # Token para o usuário user-1
  billingctl token --owner user-1 --email alex@example.com

  # Usando o token
  curl -H "Authorization: Bearer $(billingctl token --owner user-1)" localhost:8080/api/v1/dashboard`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().String("owner", "", "ID do dono dos dados (obrigatório)")
	tokenCmd.Flags().String("email", "", "e-mail incluído no token")
	tokenCmd.Flags().String("name", "", "nome incluído no token")
	_ = tokenCmd.MarkFlagRequired("owner")
}

func runToken(cmd *cobra.Command, args []string) error {
	ownerID, _ := cmd.Flags().GetString("owner")
	email, _ := cmd.Flags().GetString("email")
	name, _ := cmd.Flags().GetString("name")

	if cfg.JWTSecretKey == "" {
		return config.ErrMissingJWTSecret
	}
	if ownerID == "" {
		return errors.New("--owner não pode ser vazio")
	}

	service, err := auth.NewJWTService(cfg.JWTSecretKey, cfg.JWTExpiration, cfg.JWTIssuer)
	if err != nil {
		return err
	}

	token, err := service.GenerateToken(ownerID, email, name)
	if err != nil {
		return fmt.Errorf("erro ao gerar token: %w", err)
	}

	log.Debug("token emitido", "owner_id", ownerID, "expires_in", cfg.JWTExpiration.String())
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
