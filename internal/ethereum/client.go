package ethereum

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/blues/escrow/internal/config"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Client 托管账户的链上出金客户端
type Client struct {
	client        *ethclient.Client
	privateKey    *ecdsa.PrivateKey
	chainID       *big.Int
	confirmations int
}

// Init 连接以太坊节点并加载托管账户私钥
func Init(cfg config.ChainConfig) (*Client, error) {
	// 连接以太坊客户端
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	// 解析私钥
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return &Client{
		client:        client,
		privateKey:    privateKey,
		chainID:       big.NewInt(cfg.ChainId),
		confirmations: cfg.Confirmations,
	}, nil
}

// AccountAddress 托管账户地址
func (c *Client) AccountAddress() common.Address {
	return crypto.PubkeyToAddress(c.privateKey.PublicKey)
}

// Balance 查询托管账户余额（wei）
func (c *Client) Balance(ctx context.Context) (*big.Int, error) {
	return c.client.BalanceAt(ctx, c.AccountAddress(), nil)
}

// SendValue 向指定地址发送原生币，返回交易哈希
func (c *Client) SendValue(ctx context.Context, to common.Address, amount *big.Int) (common.Hash, error) {
	from := c.AccountAddress()

	nonce, err := c.client.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get gas price: %w", err)
	}

	tx := types.NewTransaction(nonce, to, amount, 21000, gasPrice, nil)
	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(c.chainID), c.privateKey)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return common.Hash{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	return signedTx.Hash(), nil
}

// WaitConfirmed 等待交易落块并达到确认数；交易回执为失败状态时返回错误
func (c *Client) WaitConfirmed(ctx context.Context, txHash common.Hash) error {
	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	for {
		receipt, err := c.client.TransactionReceipt(ctx, txHash)
		if err == nil && receipt != nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return fmt.Errorf("transaction %s reverted", txHash.Hex())
			}
			confirmed, err := c.isConfirmed(ctx, receipt)
			if err != nil {
				return err
			}
			if confirmed {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// isConfirmed 检查回执是否已达到确认区块数
func (c *Client) isConfirmed(ctx context.Context, receipt *types.Receipt) (bool, error) {
	header, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to get latest block: %w", err)
	}
	latest := header.Number.Uint64()
	return latest >= receipt.BlockNumber.Uint64()+uint64(c.confirmations), nil
}
