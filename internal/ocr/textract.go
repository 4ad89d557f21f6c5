package ocr

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

// TextractClient implements Client on AWS Textract.
type TextractClient struct {
	client *textract.Client
}

func NewTextractClient(cfg aws.Config) *TextractClient {
	return &TextractClient{client: textract.NewFromConfig(cfg)}
}

func (t *TextractClient) Detect(ctx context.Context, data []byte) ([]Block, error) {
	out, err := t.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: data},
	})
	if err != nil {
		return nil, fmt.Errorf("detect document text: %w", err)
	}
	return convertBlocks(out.Blocks), nil
}

func (t *TextractClient) Submit(ctx context.Context, ref DocumentRef) (string, error) {
	out, err := t.client.StartDocumentTextDetection(ctx, &textract.StartDocumentTextDetectionInput{
		DocumentLocation: &types.DocumentLocation{
			S3Object: &types.S3Object{
				Bucket: aws.String(ref.Bucket),
				Name:   aws.String(ref.Key),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("start document text detection: %w", err)
	}
	return aws.ToString(out.JobId), nil
}

func (t *TextractClient) Poll(ctx context.Context, jobID, nextToken string) (*JobPage, error) {
	in := &textract.GetDocumentTextDetectionInput{JobId: aws.String(jobID)}
	if nextToken != "" {
		in.NextToken = aws.String(nextToken)
	}

	out, err := t.client.GetDocumentTextDetection(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("get document text detection: %w", err)
	}

	return &JobPage{
		Status:        convertStatus(out.JobStatus),
		Blocks:        convertBlocks(out.Blocks),
		NextToken:     aws.ToString(out.NextToken),
		StatusMessage: aws.ToString(out.StatusMessage),
	}, nil
}

func convertBlocks(in []types.Block) []Block {
	blocks := make([]Block, 0, len(in))
	for _, b := range in {
		blocks = append(blocks, Block{
			Type: BlockType(b.BlockType),
			Text: aws.ToString(b.Text),
		})
	}
	return blocks
}

func convertStatus(s types.JobStatus) JobStatus {
	switch s {
	case types.JobStatusSucceeded, types.JobStatusPartialSuccess:
		// A partial success still carries blocks worth draining.
		return JobStatusSucceeded
	case types.JobStatusFailed:
		return JobStatusFailed
	default:
		return JobStatusRunning
	}
}
