package ec2pl

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"

	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/domain"
)

type fakeEC2 struct {
	describeOut *ec2.DescribeManagedPrefixListsOutput
	describeErr error

	// постраничные ответы GetManagedPrefixListEntries
	entryPages []*ec2.GetManagedPrefixListEntriesOutput
	entriesErr error
	pageCalls  int

	modifyOut *ec2.ModifyManagedPrefixListOutput
	modifyErr error
	lastIn    *ec2.ModifyManagedPrefixListInput
}

func (f *fakeEC2) DescribeManagedPrefixLists(
	_ context.Context,
	_ *ec2.DescribeManagedPrefixListsInput,
	_ ...func(*ec2.Options),
) (*ec2.DescribeManagedPrefixListsOutput, error) {
	return f.describeOut, f.describeErr
}

func (f *fakeEC2) GetManagedPrefixListEntries(
	_ context.Context,
	_ *ec2.GetManagedPrefixListEntriesInput,
	_ ...func(*ec2.Options),
) (*ec2.GetManagedPrefixListEntriesOutput, error) {
	if f.entriesErr != nil {
		return nil, f.entriesErr
	}
	out := f.entryPages[f.pageCalls]
	f.pageCalls++
	return out, nil
}

func (f *fakeEC2) ModifyManagedPrefixList(
	_ context.Context,
	in *ec2.ModifyManagedPrefixListInput,
	_ ...func(*ec2.Options),
) (*ec2.ModifyManagedPrefixListOutput, error) {
	f.lastIn = in
	return f.modifyOut, f.modifyErr
}

const (
	listID = "pl-0123456789abcdef0"
	tag    = "Auto-updated host IP"
)

func TestGetVersion(t *testing.T) {
	api := &fakeEC2{
		describeOut: &ec2.DescribeManagedPrefixListsOutput{
			PrefixLists: []ec2types.ManagedPrefixList{{Version: aws.Int64(42)}},
		},
	}
	db := NewWithAPI(api)

	v, err := db.GetVersion(context.Background(), listID)
	if err != nil {
		t.Fatalf("GetVersion error: %v", err)
	}
	if v != 42 {
		t.Fatalf("expected version 42, got %d", v)
	}
}

func TestGetVersion_ListMissing(t *testing.T) {
	t.Run("empty describe result", func(t *testing.T) {
		api := &fakeEC2{describeOut: &ec2.DescribeManagedPrefixListsOutput{}}
		db := NewWithAPI(api)

		_, err := db.GetVersion(context.Background(), listID)
		if !errors.Is(err, domain.ErrListNotFound) {
			t.Fatalf("expected ErrListNotFound, got %v", err)
		}
	})

	t.Run("api not found error", func(t *testing.T) {
		api := &fakeEC2{describeErr: &smithy.GenericAPIError{
			Code:    "InvalidPrefixListID.NotFound",
			Message: "The prefix list does not exist",
		}}
		db := NewWithAPI(api)

		_, err := db.GetVersion(context.Background(), listID)
		if !errors.Is(err, domain.ErrListNotFound) {
			t.Fatalf("expected ErrListNotFound, got %v", err)
		}
	})
}

func TestGetOwnedEntries_FiltersAndPaginates(t *testing.T) {
	api := &fakeEC2{
		entryPages: []*ec2.GetManagedPrefixListEntriesOutput{
			{
				Entries: []ec2types.PrefixListEntry{
					{Cidr: aws.String("1.2.3.4/32"), Description: aws.String(tag)},
					{Cidr: aws.String("10.0.0.0/8"), Description: aws.String("office network")},
				},
				NextToken: aws.String("page2"),
			},
			{
				Entries: []ec2types.PrefixListEntry{
					{Cidr: aws.String("5.6.7.8/32"), Description: aws.String(tag)},
					{Cidr: aws.String("172.16.0.0/12"), Description: nil},
				},
			},
		},
	}
	db := NewWithAPI(api)

	owned, err := db.GetOwnedEntries(context.Background(), listID, tag)
	if err != nil {
		t.Fatalf("GetOwnedEntries error: %v", err)
	}
	if api.pageCalls != 2 {
		t.Fatalf("expected 2 pages read, got %d", api.pageCalls)
	}
	if len(owned) != 2 {
		t.Fatalf("expected 2 owned entries, got %v", owned)
	}
	// Чужие записи не должны просачиваться
	for _, e := range owned {
		if e.Description != tag {
			t.Fatalf("foreign entry leaked: %+v", e)
		}
	}
	if owned[0].CIDR != "1.2.3.4/32" || owned[1].CIDR != "5.6.7.8/32" {
		t.Fatalf("unexpected CIDRs: %+v", owned)
	}
}

func TestReplaceEntries_GuardAndPayload(t *testing.T) {
	api := &fakeEC2{
		modifyOut: &ec2.ModifyManagedPrefixListOutput{
			PrefixList: &ec2types.ManagedPrefixList{Version: aws.Int64(8)},
		},
	}
	db := NewWithAPI(api)

	newV, err := db.ReplaceEntries(context.Background(), listID, 7,
		[]string{"1.2.3.4/32"},
		[]domain.RemoteEntry{{CIDR: "5.6.7.8/32", Description: tag}},
	)
	if err != nil {
		t.Fatalf("ReplaceEntries error: %v", err)
	}
	if newV != 8 {
		t.Fatalf("expected new version 8, got %d", newV)
	}

	in := api.lastIn
	if aws.ToInt64(in.CurrentVersion) != 7 {
		t.Fatalf("expected version guard 7, got %d", aws.ToInt64(in.CurrentVersion))
	}
	if len(in.RemoveEntries) != 1 || aws.ToString(in.RemoveEntries[0].Cidr) != "1.2.3.4/32" {
		t.Fatalf("unexpected removals: %+v", in.RemoveEntries)
	}
	if len(in.AddEntries) != 1 ||
		aws.ToString(in.AddEntries[0].Cidr) != "5.6.7.8/32" ||
		aws.ToString(in.AddEntries[0].Description) != tag {
		t.Fatalf("unexpected additions: %+v", in.AddEntries)
	}
}

func TestReplaceEntries_VersionMismatch(t *testing.T) {
	api := &fakeEC2{modifyErr: &smithy.GenericAPIError{
		Code:    "PrefixListVersionMismatch",
		Message: "The prefix list has the incorrect version number",
	}}
	db := NewWithAPI(api)

	_, err := db.ReplaceEntries(context.Background(), listID, 7, nil,
		[]domain.RemoteEntry{{CIDR: "5.6.7.8/32", Description: tag}})
	if !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
}

func TestReplaceEntries_GenericRemoteError(t *testing.T) {
	api := &fakeEC2{modifyErr: &smithy.GenericAPIError{
		Code:    "UnauthorizedOperation",
		Message: "You are not authorized",
	}}
	db := NewWithAPI(api)

	_, err := db.ReplaceEntries(context.Background(), listID, 7, nil, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if errors.Is(err, domain.ErrVersionConflict) || errors.Is(err, domain.ErrListNotFound) {
		t.Fatalf("generic error misclassified: %v", err)
	}
}

func TestEmptyListID(t *testing.T) {
	db := NewWithAPI(&fakeEC2{})

	if _, err := db.GetVersion(context.Background(), ""); !errors.Is(err, ErrEmptyListID) {
		t.Fatalf("expected ErrEmptyListID, got %v", err)
	}
	if _, err := db.GetOwnedEntries(context.Background(), "", tag); !errors.Is(err, ErrEmptyListID) {
		t.Fatalf("expected ErrEmptyListID, got %v", err)
	}
	if _, err := db.ReplaceEntries(context.Background(), "", 1, nil, nil); !errors.Is(err, ErrEmptyListID) {
		t.Fatalf("expected ErrEmptyListID, got %v", err)
	}
}
